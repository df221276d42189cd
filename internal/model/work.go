package model

import "sort"

// Work is a single publication record.
type Work struct {
	ID                    string           `json:"id" yaml:"id"`
	DisplayName           string           `json:"display_name" yaml:"display_name"`
	DOI                   string           `json:"doi,omitempty" yaml:"doi,omitempty"`
	PublicationYear       int              `json:"publication_year" yaml:"publication_year"`
	PublicationDate       string           `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`
	CitedByCount          int              `json:"cited_by_count" yaml:"cited_by_count"`
	HostVenue             string           `json:"host_venue,omitempty" yaml:"host_venue,omitempty"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index,omitempty" yaml:"abstract_inverted_index,omitempty"`
}

// AbstractText reconstructs the abstract from the catalog's inverted index
// representation (word -> positions).
func (w Work) AbstractText() string {
	if len(w.AbstractInvertedIndex) == 0 {
		return ""
	}

	type placed struct {
		word string
		pos  int
	}
	words := make([]placed, 0, len(w.AbstractInvertedIndex))
	for word, positions := range w.AbstractInvertedIndex {
		for _, pos := range positions {
			words = append(words, placed{word: word, pos: pos})
		}
	}
	sort.Slice(words, func(i, j int) bool { return words[i].pos < words[j].pos })

	out := make([]byte, 0, len(words)*8)
	for i, wp := range words {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, wp.word...)
	}
	return string(out)
}
