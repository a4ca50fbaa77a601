package radical

import "errors"

// ErrUnknownOption indicates an unrecognized policy or mode name.
var ErrUnknownOption = errors.New("unknown option")
