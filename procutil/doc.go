// Package procutil locates processes in the host process table and reads their
// environment.
//
// It is built on github.com/shirou/gopsutil/v4/process, which reads /proc on
// Linux, sysctl on macOS and the BSDs, and the native APIs elsewhere. On FreeBSD
// the environment of another process is read through procstat(1) instead, since
// gopsutil does not expose it there.
//
// # Locating a session
//
// Find takes a single snapshot of the process table and keeps the processes
// owned by a user whose name matches a target, either exactly or as a substring:
//
//	matches, err := procutil.Find(ctx, procutil.SystemTable{}, procutil.Filter{
//	    User: "alice",
//	    Name: "mate-session",
//	    Mode: procutil.MatchExact,
//	})
//	if err != nil {
//	    return err
//	}
//	session, err := procutil.SelectOne(matches)
//	if err != nil {
//	    // errors.Is(err, procutil.ErrNoSession) or procutil.ErrAmbiguousSession
//	    return err
//	}
//	vars, err := procutil.Environ(ctx, session)
//
// Processes whose owner or name cannot be read (exited mid-scan, owned by
// another security context) never match; they do not abort the scan.
//
// # Uniqueness
//
// SelectOne never picks among several candidates. Zero matches and more than one
// match are both errors, so callers never read the environment of an unintended
// process.
package procutil
