package handlers

import "fmt"

// Env prints the lab state file, or a single key's value when key is given.
func Env(configPath, key string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	store, err := openState(cfg.StateFile)
	if err != nil {
		return err
	}

	if key != "" {
		value, ok := store.Get(key)
		if !ok {
			return fmt.Errorf("%s is not set in %s", key, store.Path())
		}
		fmt.Println(value)
		return nil
	}

	for _, k := range store.Keys() {
		value, _ := store.Get(k)
		fmt.Printf("%s=%s\n", k, value)
	}
	return nil
}
