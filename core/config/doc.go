// Package config fills configuration structs from the environment.
//
// On the first call a .env file in the working directory is loaded if present
// (joho/godotenv, never overriding variables already set). Fields are then
// parsed by caarlos0/env from their `env` and `envDefault` tags. Nested
// structs are walked, which is how app.Config collects the settings of every
// component.
//
//	var cfg app.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	config.MustLoad(&cfg) // panics instead
//
// The parsed value is cached per type; later loads of the same type copy the
// cached value without reading the environment again. Reset clears the cache.
package config
