package model

// LoadResult is the outcome of loading a file from a dataset. Path is
// always the local cache location. Data is set only when smart return
// applied, i.e. the caller asked for it and the declared format had a
// registered loader.
type LoadResult struct {
	Path string
	Data any
}

// Decoded reports whether the in-memory arm of the result is populated.
func (r *LoadResult) Decoded() bool {
	return r.Data != nil
}
