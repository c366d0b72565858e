package filters

import "fmt"

// Registrar is the host side of filter registration
type Registrar interface {
	Register(name string, fn any) error
}

// Register adds the package's filters to r. Hosts call it once at startup.
func Register(r Registrar) error {
	if err := r.Register(SortHashByValueName, SortHashByValue); err != nil {
		return fmt.Errorf("failed to register %s: %w", SortHashByValueName, err)
	}
	return nil
}
