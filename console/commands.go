package console

import "github.com/galaplate/petitions/console/commands"

// RegisterCommands registers all available console commands.
func (k *Kernel) RegisterCommands() {
	// Database commands
	k.Register(&commands.DbCreateCommand{})
	k.Register(&commands.DbUpCommand{})
	k.Register(&commands.DbDownCommand{})
	k.Register(&commands.DbStatusCommand{})
	k.Register(&commands.DbResetCommand{})
	k.Register(&commands.DbFreshCommand{})
	k.Register(&commands.DbSeedCommand{})
	k.Register(&commands.DbDumpCommand{})

	// Make commands
	k.Register(&commands.MakeSeederCommand{})
	k.Register(&commands.MakeFactoryCommand{})

	// Petition commands
	k.Register(&commands.PetitionsExportCommand{})

	k.Register(&commands.ListCommand{Commands: k.describers})
}
