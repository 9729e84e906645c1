// SPDX-License-Identifier: MIT

package simulation

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qdna/qerr"
)

var (
	// ErrNoStore indicates Request.Save without a configured store.
	ErrNoStore = fmt.Errorf("simulation: save requested without a store: %w", qerr.ErrConfiguration)

	// ErrNilSource indicates a Runner built without a parameter source.
	ErrNilSource = errors.New("simulation: nil parameter source")
)

// stageErrorf tags err with the failing stage.
func stageErrorf(stage string, err error) error {
	return fmt.Errorf("simulation: %s: %w", stage, err)
}
