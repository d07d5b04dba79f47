package toc

import "git.home.luguber.info/inful/bookit/internal/book"

// Sequence annotates each flat entry with the adjacent output file names.
// The first entry's Prev and the last entry's Next stay empty. Single pass,
// no reordering.
func Sequence(files []*book.FlatFile) {
	for i, f := range files {
		if i > 0 {
			f.Prev = files[i-1].FileName
		}
		if i < len(files)-1 {
			f.Next = files[i+1].FileName
		}
	}
}
