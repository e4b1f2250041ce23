//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds the sample and runs it against engine.toml.
func (Run) Engine() error {
	mg.Deps(Build.Engine)
	fmt.Println("Run engine...")
	if _, err := executeCmd("bin/glengine", withArgs("-config", "engine.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
