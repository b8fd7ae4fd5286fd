package domain

// Record is a single materialized item whose fields can be read by name.
type Record interface {
	Field(name string) (any, bool)
}

// Row is a Record backed by a map.
type Row map[string]any

func (r Row) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// Rows is an in-memory collection of rows.
type Rows []Row

func (rs Rows) Each(fn func(Record) error) error {
	for _, r := range rs {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}
