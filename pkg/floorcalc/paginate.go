package floorcalc

// Page is one visible slice of a larger list.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalPages int `json:"totalPages"`
	PageIndex  int `json:"pageIndex"`
}

// Paginate slices list into pages of pageSize and returns the page at
// pageIndex. An out-of-range index clamps: past the end (the list shrank
// underneath the caller) to the last page, negative to the first.
func Paginate[T any](list []T, pageIndex, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = 1
	}
	if pageIndex < 0 {
		pageIndex = 0
	}

	totalPages := (len(list) + pageSize - 1) / pageSize
	if totalPages == 0 {
		return Page[T]{Items: []T{}, TotalPages: 0, PageIndex: 0}
	}

	if pageIndex > totalPages-1 {
		pageIndex = totalPages - 1
	}

	start := pageIndex * pageSize
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return Page[T]{Items: list[start:end], TotalPages: totalPages, PageIndex: pageIndex}
}
