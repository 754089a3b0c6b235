package bibtexparser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nickng/bibtex"
)

// Entry is a parsed BibTeX entry reduced to the bibliographic fields the
// paper catalog stores.
type Entry struct {
	CiteName string
	DOI      string
	ArxivID  string
	Title    string
	Authors  []string
	Year     *int
	Abstract string
}

var arxivPattern = regexp.MustCompile(`arXiv:(\d{4}\.\d{4,5}|[a-zA-Z\-]+/\d{7})`)

// Parse extracts bibliographic entries from a BibTeX document. Entries
// without a title are dropped, since a paper record cannot exist without one.
func Parse(content string) ([]Entry, error) {
	bib, err := bibtex.Parse(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, raw := range bib.Entries {
		fields := make(map[string]string, len(raw.Fields))
		for key, value := range raw.Fields {
			fields[strings.ToLower(key)] = cleanFieldValue(value.String())
		}

		entry := Entry{
			CiteName: raw.CiteName,
			DOI:      fields["doi"],
			ArxivID:  extractArxivID(fields),
			Title:    fields["title"],
			Abstract: fields["abstract"],
		}
		if entry.Title == "" {
			continue
		}
		if year, err := strconv.Atoi(fields["year"]); err == nil {
			entry.Year = &year
		}
		if author := fields["author"]; author != "" {
			entry.Authors = splitAuthors(author)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func cleanFieldValue(value string) string {
	value = strings.Trim(value, "{}\"")
	value = strings.ReplaceAll(value, "{", "")
	value = strings.ReplaceAll(value, "}", "")
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	value = regexp.MustCompile(`\s+`).ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// extractArxivID finds an arXiv identifier in the dedicated fields or, as
// preprint entries often do, buried in the journal, url or doi fields.
func extractArxivID(fields map[string]string) string {
	if id := fields["arxiv"]; id != "" && !strings.Contains(id, ":") {
		return id
	}
	if id := fields["eprint"]; id != "" && !strings.Contains(id, ":") {
		return id
	}
	for _, field := range []string{"journal", "title", "url", "doi", "arxiv", "eprint"} {
		if value, ok := fields[field]; ok {
			if matches := arxivPattern.FindStringSubmatch(value); matches != nil {
				return matches[1]
			}
		}
	}
	return ""
}

// splitAuthors turns a BibTeX "A and B and C" author field into an ordered
// list of author names.
func splitAuthors(author string) []string {
	parts := strings.Split(author, " and ")
	authors := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}
