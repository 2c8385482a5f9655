// Package config loads environment variables into typed structs.
//
//	var cfg jwtinspect.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// A .env file in the working directory is read once, before the first
// load, without overriding variables already set. Each struct type is
// parsed once; later loads of the same type copy the cached value.
package config
