// Package splitter turns one rendered text into named output files.
//
// A line that starts with two or more '=' characters followed by '>' is a
// file marker; the rest of the line, trimmed, is the file name:
//
//	==> models/user.go
//	package models
//
//	==> models/user_test.go
//	package models
//
// The first marker fixes the token for the whole text: after "===>" has been
// seen, only lines starting with "===>" start new files. Text before the
// first marker is discarded.
//
// Each file body is normalized: trailing whitespace is removed from every
// line, one blank line directly after the marker is dropped, trailing blank
// lines are dropped, and indentation can be re-expressed with a different
// unit (see Options.IndentText).
//
// Example usage:
//
//	files, err := splitter.Split(rendered, splitter.Options{NewLine: "\n", IndentText: "\t"})
//	if err != nil {
//		return err
//	}
//	for _, f := range files {
//		fmt.Printf("%s (%d bytes)\n", f.Name, len(f.Text))
//	}
package splitter
