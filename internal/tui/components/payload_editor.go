package components

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/artpar/rawpayload/internal/broadcast"
	"github.com/artpar/rawpayload/internal/payload"
	"github.com/artpar/rawpayload/internal/tui"
	"github.com/artpar/rawpayload/internal/tui/codeeditor"
	"github.com/artpar/rawpayload/internal/tui/vim"
)

// Notices shown when a transform cannot parse the payload.
const (
	NoticeInvalidJSON = "JSON value is invalid. Cannot parse value."
	NoticeInvalidForm = "Payload is not valid URL-encoded data. Cannot decode value."
)

// DefaultNoticeDuration is how long a notice stays on screen.
const DefaultNoticeDuration = 2 * time.Second

// UpdateSource tags who initiated a value change.
type UpdateSource int

const (
	// SourceExternal is a host calling SetValue.
	SourceExternal UpdateSource = iota
	// SourceEditor is a user edit reported by the embedded editor.
	SourceEditor
	// SourceTransform is one of the format/minify/encode/decode operations.
	SourceTransform
)

// String returns the string representation of the source.
func (s UpdateSource) String() string {
	switch s {
	case SourceExternal:
		return "external"
	case SourceEditor:
		return "editor"
	case SourceTransform:
		return "transform"
	default:
		return "unknown"
	}
}

// LintState is the editor lint state driven by the content type.
type LintState int

const (
	Unlinted LintState = iota
	Linted
)

// String returns the string representation of the lint state.
func (s LintState) String() string {
	if s == Linted {
		return "linted"
	}
	return "unlinted"
}

// ValueChange is delivered to value subscribers.
type ValueChange struct {
	Value    string
	Previous string
	Source   UpdateSource
}

// ContentTypeChange is delivered to content-type subscribers.
type ContentTypeChange struct {
	ContentType string
	Previous    string
	Flags       payload.Flags
}

// ContentTypeChangedMsg lets a host broadcast a content type through the
// bubbletea update loop instead of a ContentTypeSource.
type ContentTypeChangedMsg struct {
	ContentType string
}

// clearNoticeMsg clears the notice with the matching sequence number.
type clearNoticeMsg struct {
	seq int
}

// PayloadEditorOption configures a PayloadEditor.
type PayloadEditorOption func(*payloadEditorOptions)

type payloadEditorOptions struct {
	title          string
	noticeDuration time.Duration
	logger         *slog.Logger
	copyFn         func(string) error
	now            func() time.Time
	editorOpts     []codeeditor.Option
}

// WithTitle sets the panel title.
func WithTitle(title string) PayloadEditorOption {
	return func(o *payloadEditorOptions) {
		o.title = title
	}
}

// WithNoticeDuration sets how long notices stay visible.
func WithNoticeDuration(d time.Duration) PayloadEditorOption {
	return func(o *payloadEditorOptions) {
		if d > 0 {
			o.noticeDuration = d
		}
	}
}

// WithLogger sets the editor logger.
func WithLogger(l *slog.Logger) PayloadEditorOption {
	return func(o *payloadEditorOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClipboard replaces the function used to copy the payload.
func WithClipboard(fn func(string) error) PayloadEditorOption {
	return func(o *payloadEditorOptions) {
		if fn != nil {
			o.copyFn = fn
		}
	}
}

// WithClock replaces time.Now for notice expiry.
func WithClock(now func() time.Time) PayloadEditorOption {
	return func(o *payloadEditorOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithEditorOptions passes options through to the embedded editor.
func WithEditorOptions(opts ...codeeditor.Option) PayloadEditorOption {
	return func(o *payloadEditorOptions) {
		o.editorOpts = append(o.editorOpts, opts...)
	}
}

// PayloadEditor edits a raw request body bound to a content type.
type PayloadEditor struct {
	title   string
	focused bool
	width   int
	height  int

	value       string
	contentType string
	flags       payload.Flags
	lintState   LintState

	editor *codeeditor.Model
	mode   *vim.ModeManager
	keys   PayloadKeyMap
	help   help.Model

	valueListeners       *listeners[ValueChange]
	contentTypeListeners *listeners[ContentTypeChange]
	onValue              Subscription
	detach               func()

	notice         string
	noticeIsError  bool
	noticeUntil    time.Time
	noticeSeq      int
	noticeDuration time.Duration
	lastChange     payload.ChangeStats

	logger *slog.Logger
	copyFn func(string) error
	now    func() time.Time
}

// NewPayloadEditor creates an empty, unlinted payload editor.
func NewPayloadEditor(opts ...PayloadEditorOption) *PayloadEditor {
	o := &payloadEditorOptions{
		title:          "Body",
		noticeDuration: DefaultNoticeDuration,
		logger:         slog.New(slog.DiscardHandler),
		copyFn:         clipboard.WriteAll,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	p := &PayloadEditor{
		title:                o.title,
		mode:                 vim.NewModeManager(),
		keys:                 DefaultPayloadKeyMap(),
		help:                 help.New(),
		valueListeners:       newListeners[ValueChange](),
		contentTypeListeners: newListeners[ContentTypeChange](),
		noticeDuration:       o.noticeDuration,
		logger:               o.logger,
		copyFn:               o.copyFn,
		now:                  o.now,
	}

	editorOpts := append([]codeeditor.Option{}, o.editorOpts...)
	editorOpts = append(editorOpts, codeeditor.WithOnChange(p.editorValueChanged))
	p.editor = codeeditor.New(editorOpts...)
	p.updateBindings()
	return p
}

// Init initializes the component.
func (p *PayloadEditor) Init() tea.Cmd {
	p.Refresh()
	return nil
}

// Update handles messages.
func (p *PayloadEditor) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.SetSize(msg.Width, msg.Height)
		p.Refresh()
		return p, nil

	case tui.ResizeMsg:
		p.SetSize(msg.Width, msg.Height)
		p.Refresh()
		return p, nil

	case tui.RefreshMsg:
		p.Refresh()
		return p, nil

	case tui.FocusMsg:
		p.Focus()
		return p, nil

	case tui.BlurMsg:
		p.Blur()
		return p, nil

	case ContentTypeChangedMsg:
		p.SetContentType(msg.ContentType)
		return p, nil

	case clearNoticeMsg:
		if msg.seq == p.noticeSeq {
			p.clearNotice()
		}
		return p, nil

	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		return p.handleKeyMsg(msg)
	}

	if p.mode.IsInsert() {
		cmd, _ := p.editor.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PayloadEditor) handleKeyMsg(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	if p.mode.IsInsert() {
		if key.Matches(msg, p.keys.Normal) {
			p.exitInsert()
			return p, nil
		}
		cmd, _ := p.editor.Update(msg)
		return p, cmd
	}

	switch {
	case key.Matches(msg, p.keys.Insert):
		return p, p.enterInsert()

	case key.Matches(msg, p.keys.Format):
		_ = p.FormatValue()
		return p, p.noticeCmd()

	case key.Matches(msg, p.keys.Minify):
		_ = p.MinifyValue()
		return p, p.noticeCmd()

	case key.Matches(msg, p.keys.Encode):
		p.EncodeValue()
		return p, p.noticeCmd()

	case key.Matches(msg, p.keys.Decode):
		_ = p.DecodeValue()
		return p, p.noticeCmd()

	case key.Matches(msg, p.keys.Copy):
		p.copyValue()
		return p, p.noticeCmd()

	case key.Matches(msg, p.keys.Refresh):
		p.Refresh()
	}

	return p, nil
}

func (p *PayloadEditor) enterInsert() tea.Cmd {
	p.mode.SetMode(vim.ModeInsert)
	return p.editor.Focus()
}

func (p *PayloadEditor) exitInsert() {
	p.mode.SetMode(vim.ModeNormal)
	p.editor.Blur()
}

// Value returns the current payload.
func (p *PayloadEditor) Value() string {
	return p.value
}

// SetValue replaces the payload. Setting the current value is a no-op.
func (p *PayloadEditor) SetValue(value string) {
	p.setValue(value, SourceExternal)
}

func (p *PayloadEditor) setValue(value string, source UpdateSource) bool {
	if value == p.value {
		return false
	}
	previous := p.value
	p.value = value

	// Edits reported by the editor are already in it.
	if source != SourceEditor {
		p.editor.SetValue(value)
	}

	p.logger.Debug("payload value changed", "source", source.String(), "length", len(value))
	p.valueListeners.emit(ValueChange{Value: value, Previous: previous, Source: source})
	return true
}

func (p *PayloadEditor) editorValueChanged(value string) {
	p.setValue(value, SourceEditor)
}

// ContentType returns the current content type.
func (p *PayloadEditor) ContentType() string {
	return p.contentType
}

// SetContentType sets the content type, recomputes the flags and reconfigures
// the editor mode and linting before returning. Setting the current value is
// a no-op.
func (p *PayloadEditor) SetContentType(contentType string) {
	if contentType == p.contentType {
		return
	}
	previous := p.contentType
	p.contentType = contentType
	p.flags = payload.Classify(contentType)
	p.applyContentType(contentType)
	p.updateBindings()

	p.logger.Debug("content type changed",
		"content_type", contentType,
		"form_encoded", p.flags.IsFormEncoded,
		"json", p.flags.IsJSON,
	)
	p.contentTypeListeners.emit(ContentTypeChange{
		ContentType: contentType,
		Previous:    previous,
		Flags:       p.flags,
	})
}

// applyContentType points the editor at the mode and lint setup for contentType.
// An empty content type keeps the previous mode.
func (p *PayloadEditor) applyContentType(contentType string) {
	if contentType != "" {
		p.editor.SetMode(payload.EditorMode(contentType))
	}

	if payload.IsJSON(contentType) {
		p.editor.SetLint(payload.LintJSON)
		p.editor.SetGutters([]string{codeeditor.GutterJSONLint, codeeditor.GutterLintMarkers})
		p.lintState = Linted
	} else {
		p.editor.SetLint(nil)
		p.editor.SetGutters([]string{codeeditor.GutterLintMarkers})
		p.lintState = Unlinted
	}

	p.editor.Refresh()
}

func (p *PayloadEditor) updateBindings() {
	p.keys.Format.SetEnabled(p.flags.IsJSON)
	p.keys.Minify.SetEnabled(p.flags.IsJSON)
	p.keys.Encode.SetEnabled(p.flags.IsFormEncoded)
	p.keys.Decode.SetEnabled(p.flags.IsFormEncoded)
}

// Flags returns the flags derived from the current content type.
func (p *PayloadEditor) Flags() payload.Flags {
	return p.flags
}

// LintState returns whether JSON linting is active.
func (p *PayloadEditor) LintState() LintState {
	return p.lintState
}

// Editor returns the embedded editor widget.
func (p *PayloadEditor) Editor() *codeeditor.Model {
	return p.editor
}

// Mode returns the current editing mode.
func (p *PayloadEditor) Mode() vim.Mode {
	return p.mode.Current()
}

// IsEditing returns true while keys are routed to the text area.
func (p *PayloadEditor) IsEditing() bool {
	return p.mode.IsInsert()
}

// Subscribe registers fn for value changes.
func (p *PayloadEditor) Subscribe(fn func(ValueChange)) Subscription {
	return p.valueListeners.add(fn)
}

// SubscribeContentType registers fn for content-type changes.
func (p *PayloadEditor) SubscribeContentType(fn func(ContentTypeChange)) Subscription {
	return p.contentTypeListeners.add(fn)
}

// OnValue registers a single value callback, replacing the one registered by a
// previous OnValue call. A nil fn only removes the previous callback.
func (p *PayloadEditor) OnValue(fn func(ValueChange)) {
	p.onValue.Cancel()
	p.onValue = Subscription{}
	if fn == nil {
		return
	}
	p.onValue = p.valueListeners.add(fn)
}

// AttachOption configures how Attach delivers content types.
type AttachOption func(*attachOptions)

type attachOptions struct {
	send func(tea.Msg)
}

// WithSend delivers published content types as ContentTypeChangedMsg through
// send, usually tea.Program.Send, instead of applying them on the publisher's
// goroutine. Use it when the source publishes from outside the update loop.
func WithSend(send func(tea.Msg)) AttachOption {
	return func(o *attachOptions) {
		o.send = send
	}
}

// Attach subscribes to content-type updates from src, replacing any previous
// source. Without WithSend updates are applied synchronously.
func (p *PayloadEditor) Attach(src broadcast.ContentTypeSource, opts ...AttachOption) {
	p.Detach()
	if src == nil {
		return
	}

	var o attachOptions
	for _, opt := range opts {
		opt(&o)
	}

	deliver := p.SetContentType
	if o.send != nil {
		send := o.send
		deliver = func(contentType string) {
			send(ContentTypeChangedMsg{ContentType: contentType})
		}
	}
	p.detach = src.Subscribe(deliver)
	p.logger.Debug("attached to content type source", "queued", o.send != nil)
}

// Detach stops listening to the content-type source.
func (p *PayloadEditor) Detach() {
	if p.detach == nil {
		return
	}
	p.detach()
	p.detach = nil
	p.logger.Debug("detached from content type source")
}

// Attached returns true if a content-type source is attached.
func (p *PayloadEditor) Attached() bool {
	return p.detach != nil
}

// Refresh forces the embedded editor to re-layout.
func (p *PayloadEditor) Refresh() {
	p.editor.Refresh()
}

// FormatValue pretty-prints the payload as JSON. On failure the value is kept
// and an error notice is shown.
func (p *PayloadEditor) FormatValue() error {
	return p.applyJSON("format", payload.Format)
}

// MinifyValue removes whitespace from the JSON payload. On failure the value
// is kept and an error notice is shown.
func (p *PayloadEditor) MinifyValue() error {
	return p.applyJSON("minify", payload.Minify)
}

func (p *PayloadEditor) applyJSON(name string, fn func(string) (string, error)) error {
	out, err := fn(p.value)
	if err != nil {
		p.logger.Info("payload transform failed", "transform", name, "error", err)
		p.showNotice(NoticeInvalidJSON, true)
		return err
	}
	p.commitTransform(name, out)
	return nil
}

// EncodeValue form URL-encodes the payload.
func (p *PayloadEditor) EncodeValue() {
	p.commitTransform("encode", payload.Encode(p.value))
}

// DecodeValue reverses EncodeValue. On failure the value is kept and an error
// notice is shown.
func (p *PayloadEditor) DecodeValue() error {
	out, err := payload.Decode(p.value)
	if err != nil {
		p.logger.Info("payload transform failed", "transform", "decode", "error", err)
		p.showNotice(NoticeInvalidForm, true)
		return err
	}
	p.commitTransform("decode", out)
	return nil
}

func (p *PayloadEditor) commitTransform(name, out string) {
	stats := payload.Diff(p.value, out)
	p.lastChange = stats
	p.setValue(out, SourceTransform)
	p.Refresh()

	p.logger.Debug("payload transformed", "transform", name, "inserted", stats.Inserted, "deleted", stats.Deleted)
	if stats.Unchanged() {
		p.showNotice(fmt.Sprintf("%s: no changes", name), false)
		return
	}
	p.showNotice(fmt.Sprintf("%s: %s", name, stats), false)
}

// LastChange returns the diff stats of the last successful transform.
func (p *PayloadEditor) LastChange() payload.ChangeStats {
	return p.lastChange
}

func (p *PayloadEditor) copyValue() {
	if err := p.copyFn(p.value); err != nil {
		p.logger.Warn("copy payload failed", "error", err)
		p.showNotice("✗ Copy failed", true)
		return
	}
	p.showNotice(fmt.Sprintf("✓ Copied %dB", len(p.value)), false)
}

func (p *PayloadEditor) showNotice(text string, isError bool) {
	p.noticeSeq++
	p.notice = text
	p.noticeIsError = isError
	p.noticeUntil = p.now().Add(p.noticeDuration)
}

func (p *PayloadEditor) clearNotice() {
	p.notice = ""
	p.noticeIsError = false
}

// noticeCmd schedules clearing the current notice.
func (p *PayloadEditor) noticeCmd() tea.Cmd {
	if p.notice == "" {
		return nil
	}
	seq := p.noticeSeq
	return tea.Tick(p.noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

// Notice returns the visible notice, or "" once it expired.
func (p *PayloadEditor) Notice() string {
	if p.notice == "" || !p.now().Before(p.noticeUntil) {
		return ""
	}
	return p.notice
}

// NoticeIsError returns true if the visible notice reports a failure.
func (p *PayloadEditor) NoticeIsError() bool {
	return p.Notice() != "" && p.noticeIsError
}

// View renders the component.
func (p *PayloadEditor) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}

	innerWidth := p.width - 2
	title := tui.RenderTitle(p.Title(), innerWidth, p.focused)
	actions := p.help.ShortHelpView(p.keys.ShortHelp())

	content := []string{title, p.statusLine(), actions, p.editor.View()}
	if notice := p.Notice(); notice != "" {
		style := lipgloss.NewStyle().Foreground(tui.ColorSuccess)
		if p.noticeIsError {
			style = lipgloss.NewStyle().Foreground(tui.ColorError).Bold(true)
		}
		content = append(content, style.Render(tui.Truncate(notice, innerWidth)))
	}

	return tui.RenderBorder(strings.Join(content, "\n"), innerWidth, p.height-2, p.focused)
}

func (p *PayloadEditor) statusLine() string {
	ct := p.contentType
	if ct == "" {
		ct = "no content type"
	}
	parts := []string{p.mode.Current().Badge(), ct, p.editor.Syntax().Upper(), p.lintState.String()}
	return strings.Join(parts, "  ")
}

// Title returns the component title.
func (p *PayloadEditor) Title() string {
	return p.title
}

// Focused returns true if focused.
func (p *PayloadEditor) Focused() bool {
	return p.focused
}

// Focus sets the component as focused.
func (p *PayloadEditor) Focus() {
	p.focused = true
}

// Blur removes focus and leaves insert mode.
func (p *PayloadEditor) Blur() {
	p.focused = false
	p.mode.Reset()
	p.editor.Blur()
}

// SetSize sets dimensions. The editor gets what is left after the border,
// title, status, action and notice rows.
func (p *PayloadEditor) SetSize(width, height int) {
	p.width = width
	p.height = height

	editorHeight := height - 2 - 4
	if editorHeight < 1 {
		editorHeight = 1
	}
	editorWidth := width - 2
	if editorWidth < 1 {
		editorWidth = 1
	}
	p.editor.SetSize(editorWidth, editorHeight)
}

// Width returns the width.
func (p *PayloadEditor) Width() int {
	return p.width
}

// Height returns the height.
func (p *PayloadEditor) Height() int {
	return p.height
}

var _ tui.Component = (*PayloadEditor)(nil)
