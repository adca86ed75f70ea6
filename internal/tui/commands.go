package tui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsboard/credvault/models"
)

// copyBadgeTTL mirrors the controller's feedback window so the UI re-renders
// right when the badge expires.
const copyBadgeTTL = 2 * time.Second

const statusLingerTime = 3 * time.Second

func (m appModel) cmdLogin(user models.User) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		logged, err := controller.Login(ctx, user)
		return authDoneMsg{user: logged, err: err}
	}
}

func (m appModel) cmdRegister(user models.User) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		registered, err := controller.Register(ctx, user)
		return authDoneMsg{user: registered, err: err}
	}
}

func (m appModel) cmdQueryStatus() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		session, err := controller.QueryStatus(ctx)
		return statusLoadedMsg{session: session, err: err}
	}
}

func (m appModel) cmdSetup(password, confirm string) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		session, err := controller.Setup(ctx, password, confirm)
		return vaultChangedMsg{session: session, err: err}
	}
}

func (m appModel) cmdUnlock(password string) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		session, err := controller.Unlock(ctx, password)
		return vaultChangedMsg{session: session, err: err}
	}
}

func (m appModel) cmdLock() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		session, err := controller.Lock(ctx)
		return vaultChangedMsg{session: session, err: err}
	}
}

func (m appModel) cmdRefresh() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		items, err := controller.Refresh(ctx)
		return listRefreshedMsg{items: items, err: err}
	}
}

func (m appModel) cmdOpen(id string) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		cred, err := controller.Get(ctx, id)
		return credentialOpenedMsg{cred: cred, err: err}
	}
}

func (m appModel) cmdToggleReveal(id, field string) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		visible, err := controller.ToggleReveal(ctx, id, field)
		return revealToggledMsg{field: field, visible: visible, err: err}
	}
}

// cmdCopy resolves the decrypted value and writes it to the OS clipboard.
// The plaintext never passes through a message: only the outcome does.
func (m appModel) cmdCopy(id string, field models.CredentialField) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		value, err := controller.Copy(ctx, id, field)
		if err == nil {
			err = clipboard.WriteAll(value)
		}
		return copiedMsg{field: field, err: err}
	}
}

func (m appModel) cmdCopyExpiry() tea.Cmd {
	return tea.Tick(copyBadgeTTL, func(time.Time) tea.Msg {
		return copyExpiredMsg{}
	})
}

func (m appModel) cmdCreate(req models.CredentialWriteRequest) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		item, err := controller.Create(ctx, req)
		return savedMsg{item: item, err: err}
	}
}

func (m appModel) cmdUpdate(id string, req models.CredentialWriteRequest) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		item, err := controller.Update(ctx, id, req)
		return savedMsg{item: item, editing: true, err: err}
	}
}

func (m appModel) cmdDelete(id string) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		err := controller.Delete(ctx, id)
		return deletedMsg{id: id, err: err}
	}
}

func (m appModel) cmdClearStatus() tea.Cmd {
	return tea.Tick(statusLingerTime, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
