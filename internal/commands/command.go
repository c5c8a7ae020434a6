package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeRename   Type = "rename"
	TypeDelete   Type = "delete"
	TypeComplete Type = "complete"
	TypeShow     Type = "show"
	TypeTheme    Type = "theme"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Name string
}

type RenameArgs struct {
	Name string
}

type ShowArgs struct {
	Filter string
}

type ThemeArgs struct {
	Name string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Rename *RenameArgs
	Show   *ShowArgs
	Theme  *ThemeArgs
}

var aliases = map[string]Type{
	"new":  TypeAdd,
	"edit": TypeRename,
	"rm":   TypeDelete,
	"del":  TypeDelete,
	"done": TypeComplete,
	"view": TypeShow,
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	if alias, ok := aliases[head]; ok {
		head = string(alias)
	}

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeRename:
		return parseRename(input, args)
	case TypeDelete, TypeComplete:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments; it acts on the selected task", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	case TypeShow:
		return parseShow(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a task name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Name: name}}, nil
}

func parseRename(raw string, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rename requires a new task name"}
	}
	return Command{Type: TypeRename, Raw: raw, Rename: &RenameArgs{Name: name}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires one of: all, completed, pending"}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Filter: strings.ToLower(args[0])}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme requires a theme name"}
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Name: strings.ToLower(args[0])}}, nil
}
