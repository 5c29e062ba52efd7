package healthcheck

import "errors"

var ErrNotChecked = errors.New("health not yet checked")
