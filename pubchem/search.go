package pubchem

import "strings"

const (
	drugBankHeading  = "DrugBank ID"
	wikipediaHeading = "Wikipedia"

	drugBankDrugsURL = "https://go.drugbank.com/drugs/"
)

// FindDrugBankReference walks the sections depth-first in document order and returns
// the first DrugBank accession it finds. Only the first entry of a "DrugBank ID"
// section is considered, and an entry without a markup string never matches.
func FindDrugBankReference(sections []Section) (DrugBankReference, bool) {
	for _, section := range sections {
		if section.TOCHeading == drugBankHeading && len(section.Information) > 0 {
			info := section.Information[0]
			if id := info.FirstString(); id != "" {
				if info.URL != "" {
					return DrugBankReference{ID: id, URL: info.URL}, true
				}
				return DrugBankReference{ID: id, URL: drugBankDrugURL(id)}, true
			}
		}

		if ref, found := FindDrugBankReference(section.Section); found {
			return ref, true
		}
	}
	return DrugBankReference{}, false
}

func drugBankDrugURL(id string) string {
	return drugBankDrugsURL + id
}

// FindWikipediaReference walks the sections depth-first in document order looking for
// "Wikipedia" sections. Inside such a section, an entry whose title equals one of the
// candidate titles wins, then an entry whose title contains or is contained by a
// candidate, then the second entry. A title match ends the search even when the
// matching entry carries no URL.
func FindWikipediaReference(sections []Section, recordTitle string, synonyms ...string) (string, bool) {
	titles := candidateTitles(recordTitle, synonyms)
	wikiURL, _ := findWikipediaReference(sections, titles)
	return wikiURL, wikiURL != ""
}

// findWikipediaReference reports done once a result is final, which may be an empty URL.
func findWikipediaReference(sections []Section, titles []string) (string, bool) {
	for _, section := range sections {
		if section.TOCHeading == wikipediaHeading && len(section.Information) > 0 {
			if wikiURL, done := matchWikipediaEntries(section.Information, titles); done {
				return wikiURL, true
			}
		}

		if wikiURL, done := findWikipediaReference(section.Section, titles); done {
			return wikiURL, true
		}
	}
	return "", false
}

func matchWikipediaEntries(entries []Information, titles []string) (string, bool) {
	for _, info := range entries {
		wikiTitle := strings.ToLower(info.FirstString())
		if wikiTitle == "" {
			continue
		}
		for _, title := range titles {
			if wikiTitle == title {
				return info.URL, true
			}
		}
	}

	for _, info := range entries {
		wikiTitle := strings.ToLower(info.FirstString())
		if wikiTitle == "" {
			continue
		}
		for _, title := range titles {
			if strings.Contains(title, wikiTitle) || strings.Contains(wikiTitle, title) {
				return info.URL, true
			}
		}
	}

	if len(entries) > 1 && entries[1].URL != "" {
		return entries[1].URL, true
	}
	return "", false
}

func candidateTitles(recordTitle string, synonyms []string) []string {
	titles := make([]string, 0, len(synonyms)+1)
	for _, t := range append([]string{recordTitle}, synonyms...) {
		if t == "" {
			continue
		}
		titles = append(titles, strings.ToLower(t))
	}
	return titles
}
