// Package env provides the environment variable list exported by session-env
// and helpers to pull an ordered subset out of a process environment.
//
// The variable list is plain data. DefaultVariables returns a fresh slice each
// time, and Lookup takes the list as an argument, so callers (and tests) decide
// which variables are exported without touching package state.
//
//	vars, err := env.Lookup(sessionEnv, env.DefaultVariables(), false)
//	if err != nil {
//		var missing *env.MissingVariableError
//		if errors.As(err, &missing) {
//			// missing.Name is not set in the session
//		}
//		return err
//	}
//	for _, v := range vars {
//		// v.Name, v.Value in list order
//	}
package env
