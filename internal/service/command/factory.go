package command

import (
	"github.com/inkwell-sh/quill/internal/core"
	"github.com/inkwell-sh/quill/internal/service/memory"
)

func NewCommands(
	cfg core.ProviderConfig,
	state core.AppState,
	store *memory.Store,
	factory *memory.Factory,
	archive core.ConversationRepository,
	chat chatControl,
) []core.Command {
	return []core.Command{
		NewAddFileCommand(factory),
		NewAddSelectionCommand(factory),
		NewNoteCommand(factory),
		NewContextCommand(store),
		NewRemoveCommand(store),
		NewClearCommand(store),
		NewHistoryCommand(archive),
		NewLoadCommand(chat),
		NewDeleteCommand(archive),
		NewNewChatCommand(chat),
		NewSaveCommand(chat, factory),
		NewModelCommand(cfg, state),
	}
}
