package setup

import "fmt"

// E maps a parameter path to its validation error.
type E map[string]error

// Error ...
func (e E) Error() string {
	return fmt.Sprintf("%+v", map[string]error(e))
}

func (e E) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e E) merge(prefix string, err error) {
	if err == nil {
		return
	}
	if nested, ok := err.(E); ok {
		for key, value := range nested {
			e[prefix+"."+key] = value
		}
		return
	}
	e[prefix] = err
}
