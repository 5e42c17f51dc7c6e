package pubchem

// IdentifierListResponse models the PUG REST response listing the CIDs matching a structure.
type IdentifierListResponse struct {
	IdentifierList struct {
		CID []int `json:"CID"`
	} `json:"IdentifierList"`
}

// SynonymsResponse models the PUG REST synonyms response.
type SynonymsResponse struct {
	InformationList struct {
		Information []struct {
			CID     int      `json:"CID"`
			Synonym []string `json:"Synonym"`
		} `json:"Information"`
	} `json:"InformationList"`
}

// PropertiesResponse models the PUG REST named property response.
type PropertiesResponse struct {
	PropertyTable struct {
		Properties []struct {
			CID       int    `json:"CID"`
			IUPACName string `json:"IUPACName"`
		} `json:"Properties"`
	} `json:"PropertyTable"`
}

// RecordResponse wraps the PUG-View annotation record.
type RecordResponse struct {
	Record Record `json:"Record"`
}

// Record is the root of a compound's annotation tree.
type Record struct {
	RecordType   string    `json:"RecordType,omitempty"`
	RecordNumber int       `json:"RecordNumber,omitempty"`
	RecordTitle  string    `json:"RecordTitle,omitempty"`
	Section      []Section `json:"Section,omitempty"`
}

// Section is a node of the annotation tree. TOCHeading names its category.
type Section struct {
	TOCHeading  string        `json:"TOCHeading"`
	Description string        `json:"Description,omitempty"`
	Information []Information `json:"Information,omitempty"`
	Section     []Section     `json:"Section,omitempty"`
}

// Information is a single annotation entry. Any of its fields may be absent.
type Information struct {
	ReferenceNumber int    `json:"ReferenceNumber,omitempty"`
	Name            string `json:"Name,omitempty"`
	URL             string `json:"URL,omitempty"`
	Value           *Value `json:"Value,omitempty"`
}

type Value struct {
	StringWithMarkup []StringWithMarkup `json:"StringWithMarkup,omitempty"`
}

type StringWithMarkup struct {
	String string `json:"String"`
}

// DrugBankReference is a resolved DrugBank accession and the page it points to.
type DrugBankReference struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// FirstString returns the first markup string of the entry, or "" when there is none.
func (i Information) FirstString() string {
	if i.Value == nil || len(i.Value.StringWithMarkup) == 0 {
		return ""
	}
	return i.Value.StringWithMarkup[0].String
}
