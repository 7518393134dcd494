package chat

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// RenameCommand is the prefix of a rename request: "/user <newName>".
	RenameCommand = "/user"

	// MaxNameLength is the longest display name accepted, in characters.
	MaxNameLength = 50

	// ServerLabel prefixes server-wide announcements.
	ServerLabel = "server"

	// HelpLabel prefixes direct replies to malformed commands.
	HelpLabel = "server::help"
)

var (
	// ErrNameEmpty rejects a rename without a name.
	ErrNameEmpty = errors.New("name is empty")

	// ErrNameTooLong rejects a name longer than MaxNameLength characters.
	ErrNameTooLong = errors.New("name is too long")
)

// Help texts sent back for rejected renames.
const (
	renameUsage   = RenameCommand + " [newName]"
	renameTooLong = "new name is too long: 50 characters limit"
)

// CommandKind tells plain chat apart from commands.
type CommandKind int

const (
	// CommandMessage is plain chat text.
	CommandMessage CommandKind = iota

	// CommandRename is a "/user" request.
	CommandRename
)

// Command is a parsed inbound text frame.
type Command struct {
	Kind CommandKind

	// Arg is the requested name for CommandRename, the raw text otherwise.
	Arg string
}

// ParseCommand classifies raw client text. The "/user" prefix match is case-sensitive;
// the remainder is trimmed of surrounding whitespace.
func ParseCommand(text string) Command {
	if rest, ok := strings.CutPrefix(text, RenameCommand); ok {
		return Command{Kind: CommandRename, Arg: strings.TrimSpace(rest)}
	}
	return Command{Kind: CommandMessage, Arg: text}
}

// ValidateName checks a requested display name.
func ValidateName(name string) error {
	if name == "" {
		return ErrNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// Format renders a frame as "[label] text".
func Format(label, text string) string {
	return "[" + label + "] " + text
}

func renameHelp(err error) string {
	if errors.Is(err, ErrNameTooLong) {
		return renameTooLong
	}
	return renameUsage
}
