package config

// ValidationPredicate checks a loaded Config for what a particular command needs.
type ValidationPredicate func(*Config) error

// validatingLoader runs extra checks after an inner Loader succeeds, so commands that need
// more than the common settings can demand them without changing how files are read.
type validatingLoader struct {
	Loader
	predicates []ValidationPredicate
}

// NewValidatingLoader returns a Loader that applies predicates, in order, to every Config inner loads.
func NewValidatingLoader(inner Loader, predicates ...ValidationPredicate) Loader {
	return &validatingLoader{
		Loader:     inner,
		predicates: predicates,
	}
}

func (l *validatingLoader) Load(path string) (*Config, error) {
	cfg, err := l.Loader.Load(path)
	if err != nil {
		return nil, err
	}

	for _, check := range l.predicates {
		if err := check(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
