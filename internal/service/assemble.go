package service

import "imageservice/internal/model"

// assembleFiles zips parallel byte and name slices into ordered (bytes,
// filename) pairs. If the slices are empty or their lengths disagree the
// result is empty: a malformed pairing must never produce a torn response.
func assembleFiles(contents [][]byte, names []string) []model.File {
	if len(contents) == 0 || len(names) == 0 || len(contents) != len(names) {
		return []model.File{}
	}

	files := make([]model.File, 0, len(contents))
	for i := range contents {
		files = append(files, model.File{Name: names[i], Data: contents[i]})
	}
	return files
}
