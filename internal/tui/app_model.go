// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsboard/credvault/internal/service"
	"github.com/opsboard/credvault/internal/validators"
	"github.com/opsboard/credvault/models"
)

type screen int

const (
	screenWelcome screen = iota
	screenLogin
	screenRegister
	screenSetup
	screenUnlock
	screenList
	screenDetail
	screenForm
)

// appModel is the single Bubble Tea model of the dashboard. It routes
// messages to the active screen and owns the cross-screen state: the
// authenticated user, overlays, and the session controller.
type appModel struct {
	ctx        context.Context
	controller service.VaultController
	validator  validators.Validator
	version    string

	screen screen
	user   models.User

	welcome welcomeModel
	auth    authFormModel
	vault   masterPasswordFormModel
	list    listModel
	detail  detailModel
	form    credentialFormModel

	confirm     confirmModel
	showConfirm bool
	overlayErr  string
}

func newAppModel(ctx context.Context, controller service.VaultController, version string) appModel {
	return appModel{
		ctx:        ctx,
		controller: controller,
		validator:  validators.NewCredentialValidator(),
		version:    version,
		screen:     screenWelcome,
		list:       newListModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.overlayErr != "" {
			m.overlayErr = ""
			return m, nil
		}
		if m.showConfirm {
			return m.updateConfirm(keyMsg)
		}
	}

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.screen == screenList && m.list.loading {
			var cmd tea.Cmd
			m.list.spin, cmd = m.list.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	case authDoneMsg:
		return m.onAuthDone(msg)
	case statusLoadedMsg:
		return m.onStatusLoaded(msg)
	case vaultChangedMsg:
		return m.onVaultChanged(msg)
	case listRefreshedMsg:
		return m.onListRefreshed(msg)
	case credentialOpenedMsg:
		return m.onCredentialOpened(msg)
	case revealToggledMsg:
		if msg.err != nil {
			m.detail.errMsg = msg.err.Error()
		} else {
			m.detail.errMsg = ""
		}
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.detail.errMsg = msg.err.Error()
			return m, nil
		}
		m.detail.errMsg = ""
		return m, m.cmdCopyExpiry()
	case copyExpiredMsg:
		// Re-render only; the controller already dropped the badge.
		return m, nil
	case savedMsg:
		return m.onSaved(msg)
	case deletedMsg:
		return m.onDeleted(msg)
	case clearStatusMsg:
		m.list.status = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.screen {
	case screenWelcome:
		return m.updateWelcome(keyMsg)
	case screenLogin, screenRegister:
		return m.updateAuth(keyMsg)
	case screenSetup, screenUnlock:
		return m.updateVault(keyMsg)
	case screenList:
		return m.updateList(keyMsg)
	case screenDetail:
		return m.updateDetail(keyMsg)
	case screenForm:
		return m.updateForm(keyMsg)
	}
	return m, nil
}

func (m appModel) View() string {
	var page string
	switch m.screen {
	case screenWelcome:
		page = m.welcome.view(m.version)
	case screenLogin, screenRegister:
		page = m.auth.view()
	case screenSetup, screenUnlock:
		page = m.vault.view()
	case screenList:
		page = m.list.view()
	case screenDetail:
		page = m.detail.view(m.controller)
	case screenForm:
		page = m.form.view()
	}

	if m.showConfirm {
		page += "\n\n" + m.confirm.view()
	}
	if m.overlayErr != "" {
		page += "\n\n" + errorOverlay(m.overlayErr)
	}
	return page
}

// --- async message handlers ---

func (m appModel) onAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	m.auth.submitting = false
	if msg.err != nil {
		m.auth.errMsg = msg.err.Error()
		return m, nil
	}

	m.auth.errMsg = ""
	m.user = msg.user
	return m, m.cmdQueryStatus()
}

func (m appModel) onStatusLoaded(msg statusLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.screen == screenLogin || m.screen == screenRegister {
			m.auth.errMsg = msg.err.Error()
		} else {
			m.overlayErr = msg.err.Error()
		}
		return m, nil
	}
	return m.routeBySession(msg.session, "")
}

func (m appModel) onVaultChanged(msg vaultChangedMsg) (tea.Model, tea.Cmd) {
	m.vault.submitting = false
	if msg.err != nil {
		m.vault.errMsg = msg.err.Error()
		m.vault.reset()
		return m, nil
	}

	status := ""
	if msg.session.Status == models.VaultLocked {
		status = "Vault locked."
	}
	return m.routeBySession(msg.session, status)
}

// routeBySession maps the vault state to its screen: setup when
// unprovisioned, the unlock prompt when locked, the listing when unlocked.
// The non-unlocked branches drop every piece of UI state that can hold
// decrypted values — the open detail record, the populated edit form, and
// the stale listing — so nothing from the dead session stays resident.
func (m appModel) routeBySession(session models.VaultSession, status string) (tea.Model, tea.Cmd) {
	switch session.Status {
	case models.VaultUnprovisioned:
		m.purgeDecryptedState()
		m.screen = screenSetup
		m.vault = newSetupForm()
		return m, textinput.Blink
	case models.VaultLocked:
		m.purgeDecryptedState()
		m.screen = screenUnlock
		m.vault = newUnlockForm()
		m.vault.status = status
		return m, textinput.Blink
	default:
		m.screen = screenList
		m.list = newListModel()
		return m, tea.Batch(m.list.spin.Tick, m.cmdRefresh())
	}
}

// purgeDecryptedState resets every UI model that can carry decrypted
// credential data: the detail view owns a full plaintext record and the
// edit form's text inputs hold secret runes. The masked listing and any
// pending confirm go with them; they belong to the dead session.
func (m *appModel) purgeDecryptedState() {
	m.detail = detailModel{}
	m.form = credentialFormModel{}
	m.list = newListModel()
	m.confirm = confirmModel{}
	m.showConfirm = false
}

func (m appModel) onListRefreshed(msg listRefreshedMsg) (tea.Model, tea.Cmd) {
	m.list.loading = false
	if msg.err != nil {
		if errors.Is(msg.err, service.ErrVaultLocked) {
			return m.routeBySession(models.VaultSession{Status: models.VaultLocked}, "Session expired. The vault relocked itself.")
		}
		m.overlayErr = msg.err.Error()
		return m, nil
	}

	m.list.errMsg = ""
	m.list.items = msg.items
	m.list.clampCursor()
	return m, nil
}

func (m appModel) onCredentialOpened(msg credentialOpenedMsg) (tea.Model, tea.Cmd) {
	m.list.status = ""
	if msg.err != nil {
		if errors.Is(msg.err, service.ErrVaultLocked) {
			return m.routeBySession(models.VaultSession{Status: models.VaultLocked}, "Session expired. The vault relocked itself.")
		}
		m.overlayErr = msg.err.Error()
		return m, nil
	}

	m.detail = newDetailModel(msg.cred)
	m.screen = screenDetail
	return m, nil
}

func (m appModel) onSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.form.submitting = false
	if msg.err != nil {
		if errors.Is(msg.err, service.ErrVaultLocked) {
			return m.routeBySession(models.VaultSession{Status: models.VaultLocked}, "Session expired. The vault relocked itself.")
		}
		m.form.errMsg = msg.err.Error()
		return m, nil
	}

	m.screen = screenList
	m.list.items = m.controller.Credentials()
	m.list.clampCursor()
	if msg.editing {
		m.list.status = "Updated " + msg.item.Name + "."
	} else {
		m.list.status = "Saved " + msg.item.Name + "."
	}
	return m, m.cmdClearStatus()
}

func (m appModel) onDeleted(msg deletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, service.ErrVaultLocked) {
			return m.routeBySession(models.VaultSession{Status: models.VaultLocked}, "Session expired. The vault relocked itself.")
		}
		m.overlayErr = msg.err.Error()
		return m, nil
	}

	m.screen = screenList
	m.list.items = m.controller.Credentials()
	m.list.clampCursor()
	m.list.status = "Deleted."
	return m, m.cmdClearStatus()
}

// --- per-screen key handlers ---

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.showConfirm = false
		return m, m.cmdDelete(m.confirm.id)
	case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
		m.showConfirm = false
		return m, nil
	}
	return m, nil
}

func (m appModel) updateWelcome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.welcome.idx > 0 {
			m.welcome.idx--
		}
	case key.Matches(msg, keys.down):
		if m.welcome.idx < len(welcomeOptions)-1 {
			m.welcome.idx++
		}
	case key.Matches(msg, keys.enter):
		switch m.welcome.idx {
		case welcomeSignIn:
			m.screen = screenLogin
			m.auth = newLoginForm()
			return m, textinput.Blink
		case welcomeRegister:
			m.screen = screenRegister
			m.auth = newRegisterForm()
			return m, textinput.Blink
		case welcomeQuit:
			return m, tea.Quit
		}
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.screen = screenWelcome
		return m, nil
	case key.Matches(msg, keys.tab), key.Matches(msg, keys.down):
		m.auth.focusNext()
		return m, nil
	case key.Matches(msg, keys.backtab), key.Matches(msg, keys.up):
		m.auth.focusPrev()
		return m, nil
	case key.Matches(msg, keys.enter):
		if m.auth.submitting {
			return m, nil
		}
		if !m.auth.complete() {
			m.auth.errMsg = "login and password are required"
			return m, nil
		}
		m.auth.errMsg = ""
		m.auth.submitting = true
		if m.screen == screenRegister {
			return m, m.cmdRegister(m.auth.toUser())
		}
		return m, m.cmdLogin(m.auth.toUser())
	}

	var cmd tea.Cmd
	m.auth.inputs[m.auth.focus], cmd = m.auth.inputs[m.auth.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateVault(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.tab), key.Matches(msg, keys.backtab):
		if m.vault.setup {
			m.vault.focusNext()
		}
		return m, nil
	case key.Matches(msg, keys.enter):
		if m.vault.submitting {
			return m, nil
		}
		m.vault.errMsg = ""
		m.vault.status = ""
		m.vault.submitting = true
		if m.vault.setup {
			return m, m.cmdSetup(m.vault.inputs[0].Value(), m.vault.inputs[1].Value())
		}
		return m, m.cmdUnlock(m.vault.inputs[0].Value())
	}

	var cmd tea.Cmd
	m.vault.inputs[m.vault.focus], cmd = m.vault.inputs[m.vault.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.searching {
		switch {
		case key.Matches(msg, keys.esc):
			m.list.searching = false
			m.list.search.SetValue("")
			m.list.search.Blur()
			m.list.clampCursor()
			return m, nil
		case key.Matches(msg, keys.enter):
			m.list.searching = false
			m.list.search.Blur()
			m.list.clampCursor()
			return m, nil
		}
		var cmd tea.Cmd
		m.list.search, cmd = m.list.search.Update(msg)
		m.list.clampCursor()
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.up):
		if m.list.idx > 0 {
			m.list.idx--
		}
	case key.Matches(msg, keys.down):
		if m.list.idx < len(m.list.visible())-1 {
			m.list.idx++
		}
	case key.Matches(msg, keys.enter):
		if sel, ok := m.list.selected(); ok {
			m.list.status = "Opening " + sel.Name + "..."
			return m, m.cmdOpen(sel.ID)
		}
	case key.Matches(msg, keys.newItem):
		m.form = newCredentialForm(nil)
		m.screen = screenForm
		return m, textinput.Blink
	case key.Matches(msg, keys.delete):
		if sel, ok := m.list.selected(); ok {
			m.confirm = confirmModel{
				prompt: fmt.Sprintf("Delete %q? This cannot be undone.", sel.Name),
				id:     sel.ID,
			}
			m.showConfirm = true
		}
	case key.Matches(msg, keys.search):
		m.list.searching = true
		m.list.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.category):
		m.list.cycleCategory()
	case key.Matches(msg, keys.refresh):
		m.list.loading = true
		return m, tea.Batch(m.list.spin.Tick, m.cmdRefresh())
	case key.Matches(msg, keys.lock):
		return m, m.cmdLock()
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.screen = screenList
		return m, nil
	case key.Matches(msg, keys.up):
		m.detail.moveCursor(-1)
	case key.Matches(msg, keys.down):
		m.detail.moveCursor(1)
	case key.Matches(msg, keys.reveal), key.Matches(msg, keys.enter):
		row := m.detail.selectedRow()
		if row.revealKey != "" {
			return m, m.cmdToggleReveal(m.detail.cred.ID, row.revealKey)
		}
	case key.Matches(msg, keys.copy):
		if m.detail.cred.Password == "" {
			m.detail.errMsg = "no password stored"
			return m, nil
		}
		return m, m.cmdCopy(m.detail.cred.ID, models.CredentialPassword)
	case key.Matches(msg, keys.copyUser):
		if m.detail.cred.Username == "" {
			m.detail.errMsg = "no username stored"
			return m, nil
		}
		return m, m.cmdCopy(m.detail.cred.ID, models.CredentialUsername)
	case key.Matches(msg, keys.edit):
		cred := m.detail.cred
		m.form = newCredentialForm(&cred)
		m.screen = screenForm
		return m, textinput.Blink
	case key.Matches(msg, keys.delete):
		m.confirm = confirmModel{
			prompt: fmt.Sprintf("Delete %q? This cannot be undone.", m.detail.cred.Name),
			id:     m.detail.cred.ID,
		}
		m.showConfirm = true
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.stage == formStageField {
		return m.updateFormFieldStage(msg)
	}

	switch {
	case key.Matches(msg, keys.esc):
		if m.form.editing {
			m.screen = screenDetail
		} else {
			m.screen = screenList
		}
		return m, nil
	case key.Matches(msg, keys.tab), key.Matches(msg, keys.down):
		m.form.focusNext()
		return m, nil
	case key.Matches(msg, keys.backtab), key.Matches(msg, keys.up):
		m.form.focusPrev()
		return m, nil
	case key.Matches(msg, keys.left):
		if m.form.focus == formCategoryPos {
			m.form.cycleCategory(-1)
			return m, nil
		}
	case key.Matches(msg, keys.right):
		if m.form.focus == formCategoryPos {
			m.form.cycleCategory(1)
			return m, nil
		}
	case key.Matches(msg, keys.addField):
		m.form.enterFieldStage()
		return m, textinput.Blink
	case key.Matches(msg, keys.dropField):
		if n := len(m.form.fields); n > 0 {
			m.form.fields = m.form.fields[:n-1]
		}
		return m, nil
	case key.Matches(msg, keys.enter):
		if m.form.submitting {
			return m, nil
		}
		req := m.form.toRequest()
		if err := m.validator.Validate(m.ctx, req); err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}
		m.form.errMsg = ""
		m.form.submitting = true
		if m.form.editing {
			return m, m.cmdUpdate(m.form.id, req)
		}
		return m, m.cmdCreate(req)
	}

	if idx, ok := m.form.inputIndex(m.form.focus); ok {
		var cmd tea.Cmd
		m.form.inputs[idx], cmd = m.form.inputs[idx].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateFormFieldStage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.form.leaveFieldStage()
		m.form.errMsg = ""
		return m, nil
	case key.Matches(msg, keys.tab), key.Matches(msg, keys.down):
		m.form.fieldFocusNext()
		return m, nil
	case key.Matches(msg, keys.left):
		if m.form.fieldFocus == 0 {
			m.form.cycleFieldType(-1)
			return m, nil
		}
	case key.Matches(msg, keys.right):
		if m.form.fieldFocus == 0 {
			m.form.cycleFieldType(1)
			return m, nil
		}
	case key.Matches(msg, keys.enter):
		if err := m.form.appendField(); err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}
		m.form.errMsg = ""
		return m, nil
	}

	if m.form.fieldFocus > 0 {
		var cmd tea.Cmd
		idx := m.form.fieldFocus - 1
		m.form.fieldInputs[idx], cmd = m.form.fieldInputs[idx].Update(msg)
		return m, cmd
	}
	return m, nil
}
