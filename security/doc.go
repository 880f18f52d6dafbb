// Package security checks files that session-env trusts before reading them.
//
// The configuration file decides which process's environment is exported into
// the caller's shell, so a file that other users can modify is refused:
//
//	if err := security.ValidateFilePermissions(path); err != nil {
//	    return err // errors.Is(err, security.ErrInsecureFilePermissions)
//	}
//
// Permission checks are skipped on Windows, which uses ACLs instead of mode bits.
package security
