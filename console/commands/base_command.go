package commands

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"text/template"
)

//go:embed stubs
var stubs embed.FS

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// SetIO redirects prompts and output, mainly for tests.
func (b *BaseCommand) SetIO(in io.Reader, out io.Writer) {
	b.In, b.Out = in, out
	b.reader = nil
}

func (b *BaseCommand) out() io.Writer {
	if b.Out == nil {
		return os.Stdout
	}
	return b.Out
}

func (b *BaseCommand) readLine() string {
	if b.reader == nil {
		in := b.In
		if in == nil {
			in = os.Stdin
		}
		b.reader = bufio.NewReader(in)
	}
	line, _ := b.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (b *BaseCommand) Printf(format string, args ...any) {
	fmt.Fprintf(b.out(), format, args...)
}

// AskText prompts for text input with optional default value
func (b *BaseCommand) AskText(prompt string, defaultValue string) string {
	if defaultValue != "" {
		b.Printf("%s [%s]: ", prompt, defaultValue)
	} else {
		b.Printf("%s: ", prompt)
	}

	input := b.readLine()
	if input == "" && defaultValue != "" {
		return defaultValue
	}
	return input
}

// AskRequired prompts until a non-empty answer is given. It gives up after
// three attempts so closed input cannot loop forever.
func (b *BaseCommand) AskRequired(prompt string) string {
	for range 3 {
		b.Printf("%s: ", prompt)
		if input := b.readLine(); input != "" {
			return input
		}
		b.PrintError("This field is required. Please try again.")
	}
	return ""
}

// AskConfirmation prompts for yes/no confirmation
func (b *BaseCommand) AskConfirmation(prompt string, defaultValue bool) bool {
	defaultStr := "y/N"
	if defaultValue {
		defaultStr = "Y/n"
	}

	for range 3 {
		b.Printf("%s [%s]: ", prompt, defaultStr)

		switch strings.ToLower(b.readLine()) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		case "":
			return defaultValue
		default:
			b.PrintError("Please answer yes (y) or no (n)")
		}
	}
	return defaultValue
}

// AskNumber prompts for numeric input
func (b *BaseCommand) AskNumber(prompt string, defaultValue int) int {
	b.Printf("%s [%d]: ", prompt, defaultValue)

	if number, err := strconv.Atoi(b.readLine()); err == nil {
		return number
	}
	return defaultValue
}

// GetModuleName reads module name from go.mod
func (b *BaseCommand) GetModuleName() (string, error) {
	file, err := os.Open("go.mod")
	if err != nil {
		return "", err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "module ") {
			parts := strings.Fields(line)
			if len(parts) >= 2 {
				return parts[1], nil
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}

	return "", fmt.Errorf("module not found in go.mod")
}

var wordSeparators = regexp.MustCompile(`[_\-\s]+`)

// FormatStructName turns user_profile or user-profile into UserProfile.
func (b *BaseCommand) FormatStructName(name string) string {
	var result strings.Builder
	for _, word := range wordSeparators.Split(name, -1) {
		if len(word) > 0 {
			result.WriteString(strings.ToUpper(word[:1]) + word[1:])
		}
	}
	return result.String()
}

var goIdentifier = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_\-]*$`)

// ValidateName checks that name can become a Go identifier ending in
// suffix, e.g. PetitionSeeder.
func (b *BaseCommand) ValidateName(name, suffix string) error {
	if !goIdentifier.MatchString(name) {
		return fmt.Errorf("invalid name %q: use letters, digits, '-' or '_' and start with a letter", name)
	}
	if suffix != "" && !strings.HasSuffix(strings.ToLower(b.FormatStructName(name)), strings.ToLower(suffix)) {
		return fmt.Errorf("name %q should end with %q", name, suffix)
	}
	return nil
}

// PrintSuccess prints a success message with checkmark
func (b *BaseCommand) PrintSuccess(message string) {
	b.Printf("✅ %s\n", message)
}

// PrintError prints an error message with X mark
func (b *BaseCommand) PrintError(message string) {
	b.Printf("❌ %s\n", message)
}

// PrintWarning prints a warning message with warning symbol
func (b *BaseCommand) PrintWarning(message string) {
	b.Printf("⚠️  %s\n", message)
}

// PrintInfo prints an info message with info symbol
func (b *BaseCommand) PrintInfo(message string) {
	b.Printf("ℹ️  %s\n", message)
}

// AddImportToMain adds a blank import of importPath to main.go.
func (b *BaseCommand) AddImportToMain(importPath string) error {
	mainPath := "./main.go"

	moduleName, err := b.GetModuleName()
	if err != nil {
		return fmt.Errorf("failed to get module name: %w", err)
	}

	content, err := os.ReadFile(mainPath)
	if err != nil {
		return fmt.Errorf("failed to read main.go: %w", err)
	}

	contentStr := string(content)
	fullImport := fmt.Sprintf(`_ "%s/%s"`, moduleName, importPath)
	if strings.Contains(contentStr, fullImport) {
		return nil
	}

	lines := strings.Split(contentStr, "\n")
	newLines := make([]string, 0, len(lines)+1)
	importBlockFound := false
	importAdded := false

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "import ("):
			importBlockFound = true
		case importBlockFound && !importAdded && strings.TrimSpace(line) == ")":
			newLines = append(newLines, "\t"+fullImport)
			importAdded = true
		}
		newLines = append(newLines, line)
	}

	if !importAdded {
		return fmt.Errorf("could not find import block in main.go")
	}

	return os.WriteFile(mainPath, []byte(strings.Join(newLines, "\n")), 0644)
}

// HandleAutoImport adds the import and tells the user what happened.
func (b *BaseCommand) HandleAutoImport(importPath, itemType string) {
	if err := b.AddImportToMain(importPath); err != nil {
		b.PrintWarning(fmt.Sprintf("Could not auto-add import to main.go: %v", err))

		moduleName, err := b.GetModuleName()
		if err != nil {
			moduleName = "<your-module-name>"
		}
		b.Printf("📌 Please manually add this import to main.go:\n")
		b.Printf("   _ \"%s/%s\"\n", moduleName, importPath)
		return
	}
	b.Printf("📦 Auto-imported %s to main.go\n", itemType)
}

// GenerateFromStub renders an embedded stub template into targetPath.
func (b *BaseCommand) GenerateFromStub(stubPath, targetPath string, data any) error {
	stubContent, err := stubs.ReadFile("stubs/" + stubPath)
	if err != nil {
		return fmt.Errorf("stub template not found: %s", stubPath)
	}

	tmpl, err := template.New(stubPath).Parse(string(stubContent))
	if err != nil {
		return fmt.Errorf("failed to parse stub template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	file, err := os.OpenFile(targetPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create target file: %w", err)
	}
	defer file.Close()

	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}
