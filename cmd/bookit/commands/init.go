package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/bookit/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force    bool     `help:"Overwrite an existing configuration file"`
	Title    string   `short:"t" help:"Title for the first chapter"`
	Sections []string `short:"s" help:"Front/back matter folders to seed (e.g. preface,appendix)"`
}

func (i *InitCmd) Run(_ *Global) error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	fmt.Println("Initializing book project")
	if err := config.Init(root, config.InitOptions{
		Force:    i.Force,
		Title:    i.Title,
		Sections: i.Sections,
	}); err != nil {
		return err
	}
	fmt.Println("Initialized book successfully!")
	return nil
}
