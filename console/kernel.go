package console

import (
	"context"
	"io"
	"os"

	"github.com/galaplate/petitions/console/commands"
	"github.com/spf13/cobra"
)

// Command is a console command.
type Command interface {
	GetSignature() string
	GetDescription() string
	Execute(ctx context.Context, args []string) error
}

// FlagConfigurer is implemented by commands that take flags.
type FlagConfigurer interface {
	ConfigureFlags(cmd *cobra.Command)
}

type ioSetter interface {
	SetIO(in io.Reader, out io.Writer)
}

// Kernel dispatches command-line arguments to registered commands.
type Kernel struct {
	root     *cobra.Command
	commands []Command
	in       io.Reader
	out      io.Writer
}

type KernelOption func(*Kernel)

// WithIO sets the input and output of the kernel and of every command.
func WithIO(in io.Reader, out io.Writer) KernelOption {
	return func(k *Kernel) {
		k.in, k.out = in, out
	}
}

// NewKernel returns a kernel with the built-in commands registered.
func NewKernel(opts ...KernelOption) *Kernel {
	k := &Kernel{in: os.Stdin, out: os.Stdout}
	for _, opt := range opts {
		opt(k)
	}

	k.root = &cobra.Command{
		Use:           "petitions",
		Short:         "Petitions database toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	k.root.SetIn(k.in)
	k.root.SetOut(k.out)
	k.root.SetErr(k.out)
	k.root.CompletionOptions.DisableDefaultCmd = true

	k.RegisterCommands()
	return k
}

// Register adds a command to the kernel.
func (k *Kernel) Register(command Command) {
	if s, ok := command.(ioSetter); ok {
		s.SetIO(k.in, k.out)
	}

	cmd := &cobra.Command{
		Use:   command.GetSignature(),
		Short: command.GetDescription(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return command.Execute(cmd.Context(), args)
		},
	}
	if fc, ok := command.(FlagConfigurer); ok {
		fc.ConfigureFlags(cmd)
	}

	k.commands = append(k.commands, command)
	k.root.AddCommand(cmd)
}

// Commands returns the registered commands in registration order.
func (k *Kernel) Commands() []Command {
	return append([]Command(nil), k.commands...)
}

func (k *Kernel) describers() []commands.Describer {
	out := make([]commands.Describer, len(k.commands))
	for i, c := range k.commands {
		out[i] = c
	}
	return out
}

// Run executes the command named by args[0]. Without arguments the command
// list is shown.
func (k *Kernel) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	k.root.SetArgs(args)
	return k.root.ExecuteContext(ctx)
}
