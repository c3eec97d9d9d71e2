// Package browsertest provides an in-memory page that implements the
// browser capability interface. Waits resolve instantly against the
// current tree and fail with ErrTimeout when their condition does not hold.
package browsertest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/browser"
)

var (
	ErrTimeout = errors.New("timeout exceeded")
	ErrStrict  = errors.New("strict mode violation")
	ErrMissing = errors.New("element not found")
)

// Node is one element of the fixture document.
type Node struct {
	Target   browser.Target
	Text     string
	Attrs    map[string]string
	Hidden   bool
	Children []*Node

	// Hooks run with the page lock held; they may only touch nodes.
	OnClick func(n *Node, count int)
	OnFill  func(n *Node, value string)
	OnPress func(n *Node, key string)

	Value  string
	Clicks int

	parent *Node
}

// NewNode returns a visible node with the given text.
func NewNode(target browser.Target, text string, children ...*Node) *Node {
	n := &Node{Target: target, Text: text, Attrs: map[string]string{}}
	n.Append(children...)

	return n
}

// Append adds children at the end of n.
func (n *Node) Append(children ...*Node) *Node {
	for _, child := range children {
		child.parent = n
		n.Children = append(n.Children, child)
	}

	return n
}

// Detach removes n from its parent.
func (n *Node) Detach() {
	if n.parent == nil {
		return
	}

	siblings := n.parent.Children
	for i, sibling := range siblings {
		if sibling == n {
			n.parent.Children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}

	n.parent = nil
}

func (n *Node) visible() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.Hidden {
			return false
		}
	}

	return true
}

func (n *Node) textContent() string {
	var b strings.Builder
	b.WriteString(n.Text)

	for _, child := range n.Children {
		b.WriteString(child.textContent())
	}

	return b.String()
}

func (n *Node) descendants(target browser.Target) []*Node {
	var found []*Node

	for _, child := range n.Children {
		if child.Target == target {
			found = append(found, child)
		}

		found = append(found, child.descendants(target)...)
	}

	return found
}

// Action is one recorded interaction.
type Action struct {
	Kind    string
	Target  browser.Target
	Text    string
	Value   string
	Count   int
	Timeout time.Duration
}

// Page is an in-memory browser.Page.
type Page struct {
	mu      sync.Mutex
	root    *Node
	actions []Action

	// OnKey runs for page level key presses with the lock held.
	OnKey func(key string)

	URL string
}

// NewPage wraps root as a page document.
func NewPage(root *Node) *Page {
	return &Page{root: root}
}

// Root returns the document root.
func (p *Page) Root() *Node {
	return p.root
}

// Actions returns a copy of the recorded interactions.
func (p *Page) Actions() []Action {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]Action(nil), p.actions...)
}

// ActionsOf returns the recorded interactions of one kind.
func (p *Page) ActionsOf(kind string) []Action {
	var filtered []Action

	for _, action := range p.Actions() {
		if action.Kind == kind {
			filtered = append(filtered, action)
		}
	}

	return filtered
}

// Find returns every node of the document matching target.
func (p *Page) Find(target browser.Target) []*Node {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.root.descendants(target)
}

func (p *Page) record(action Action) {
	p.actions = append(p.actions, action)
}

func (p *Page) Locate(target browser.Target) browser.Element {
	return &element{
		page:   p,
		target: target,
		resolve: func() []*Node {
			return p.root.descendants(target)
		},
	}
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.URL = url
	p.record(Action{Kind: "navigate", Value: url})

	return nil
}

func (p *Page) PressKey(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.record(Action{Kind: "key", Value: key})

	if p.OnKey != nil {
		p.OnKey(key)
	}

	return nil
}

func (p *Page) Wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.record(Action{Kind: "wait", Timeout: d})

	return nil
}

type element struct {
	page    *Page
	target  browser.Target
	resolve func() []*Node
}

func (e *element) derive(target browser.Target, resolve func() []*Node) browser.Element {
	return &element{page: e.page, target: target, resolve: resolve}
}

func (e *element) Locate(target browser.Target) browser.Element {
	return e.derive(target, func() []*Node {
		var found []*Node

		seen := map[*Node]bool{}
		for _, n := range e.resolve() {
			for _, d := range n.descendants(target) {
				if !seen[d] {
					seen[d] = true
					found = append(found, d)
				}
			}
		}

		return found
	})
}

func (e *element) First() browser.Element {
	return e.Nth(0)
}

func (e *element) Nth(index int) browser.Element {
	return e.derive(e.target, func() []*Node {
		nodes := e.resolve()
		if index < 0 || index >= len(nodes) {
			return nil
		}

		return nodes[index : index+1]
	})
}

func (e *element) Filter(text string) browser.Element {
	return e.derive(e.target, func() []*Node {
		var found []*Node

		for _, n := range e.resolve() {
			if strings.Contains(n.textContent(), text) {
				found = append(found, n)
			}
		}

		return found
	})
}

func (e *element) Visible() browser.Element {
	return e.derive(e.target, func() []*Node {
		var found []*Node

		for _, n := range e.resolve() {
			if n.visible() {
				found = append(found, n)
			}
		}

		return found
	})
}

// lock checks ctx and takes the page lock. The caller must unlock on nil error.
func (e *element) lock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.page.mu.Lock()

	return nil
}

// single resolves to exactly one node the way strict locators do.
func (e *element) single() (*Node, error) {
	nodes := e.resolve()

	switch len(nodes) {
	case 0:
		return nil, fmt.Errorf("%s: %w", e.target, ErrMissing)
	case 1:
		return nodes[0], nil
	default:
		return nil, fmt.Errorf("%s resolved to %d elements: %w", e.target, len(nodes), ErrStrict)
	}
}

// actionable resolves to one visible node.
func (e *element) actionable() (*Node, error) {
	n, err := e.single()
	if err != nil {
		return nil, err
	}

	if !n.visible() {
		return nil, fmt.Errorf("%s is not visible: %w", e.target, ErrTimeout)
	}

	return n, nil
}

func (e *element) Count(ctx context.Context) (int, error) {
	if err := e.lock(ctx); err != nil {
		return 0, err
	}
	defer e.page.mu.Unlock()

	return len(e.resolve()), nil
}

func (e *element) All(ctx context.Context) ([]browser.Element, error) {
	if err := e.lock(ctx); err != nil {
		return nil, err
	}
	defer e.page.mu.Unlock()

	nodes := e.resolve()
	elements := make([]browser.Element, len(nodes))

	for i, n := range nodes {
		n := n
		elements[i] = e.derive(e.target, func() []*Node { return []*Node{n} })
	}

	return elements, nil
}

func (e *element) WaitVisible(ctx context.Context, timeout time.Duration) error {
	if err := e.lock(ctx); err != nil {
		return err
	}
	defer e.page.mu.Unlock()

	e.page.record(Action{Kind: "wait_visible", Target: e.target, Timeout: timeout})

	nodes := e.resolve()
	if len(nodes) > 1 {
		return fmt.Errorf("%s resolved to %d elements: %w", e.target, len(nodes), ErrStrict)
	}

	if len(nodes) == 0 || !nodes[0].visible() {
		return fmt.Errorf("waiting %s for %s to be visible: %w", timeout, e.target, ErrTimeout)
	}

	return nil
}

func (e *element) WaitHidden(ctx context.Context, timeout time.Duration) error {
	if err := e.lock(ctx); err != nil {
		return err
	}
	defer e.page.mu.Unlock()

	e.page.record(Action{Kind: "wait_hidden", Target: e.target, Timeout: timeout})

	nodes := e.resolve()
	if len(nodes) > 1 {
		return fmt.Errorf("%s resolved to %d elements: %w", e.target, len(nodes), ErrStrict)
	}

	if len(nodes) == 1 && nodes[0].visible() {
		return fmt.Errorf("waiting %s for %s to be hidden: %w", timeout, e.target, ErrTimeout)
	}

	return nil
}

func (e *element) Text(ctx context.Context) (*string, error) {
	if err := e.lock(ctx); err != nil {
		return nil, err
	}
	defer e.page.mu.Unlock()

	nodes := e.resolve()
	if len(nodes) == 0 {
		return nil, nil
	}

	n, err := e.single()
	if err != nil {
		return nil, err
	}

	text := n.textContent()

	return &text, nil
}

func (e *element) Attribute(ctx context.Context, name string) (string, error) {
	if err := e.lock(ctx); err != nil {
		return "", err
	}
	defer e.page.mu.Unlock()

	n, err := e.single()
	if err != nil {
		return "", err
	}

	return n.Attrs[name], nil
}

func (e *element) Click(ctx context.Context, count int) error {
	if err := e.lock(ctx); err != nil {
		return err
	}
	defer e.page.mu.Unlock()

	if count <= 0 {
		return nil
	}

	n, err := e.actionable()
	if err != nil {
		return err
	}

	e.page.record(Action{Kind: "click", Target: e.target, Text: n.textContent(), Count: count})
	n.Clicks += count

	if n.OnClick != nil {
		n.OnClick(n, count)
	}

	return nil
}

func (e *element) Fill(ctx context.Context, value string) error {
	if err := e.lock(ctx); err != nil {
		return err
	}
	defer e.page.mu.Unlock()

	n, err := e.actionable()
	if err != nil {
		return err
	}

	e.page.record(Action{Kind: "fill", Target: e.target, Value: value})
	n.Value = value

	if n.OnFill != nil {
		n.OnFill(n, value)
	}

	return nil
}

func (e *element) Press(ctx context.Context, key string) error {
	if err := e.lock(ctx); err != nil {
		return err
	}
	defer e.page.mu.Unlock()

	n, err := e.actionable()
	if err != nil {
		return err
	}

	e.page.record(Action{Kind: "press", Target: e.target, Value: key})

	if n.OnPress != nil {
		n.OnPress(n, key)
	}

	return nil
}

func (e *element) Focus(ctx context.Context) error {
	if err := e.lock(ctx); err != nil {
		return err
	}
	defer e.page.mu.Unlock()

	if _, err := e.actionable(); err != nil {
		return err
	}

	e.page.record(Action{Kind: "focus", Target: e.target})

	return nil
}

func (e *element) ScrollIntoView(ctx context.Context) error {
	if err := e.lock(ctx); err != nil {
		return err
	}
	defer e.page.mu.Unlock()

	if _, err := e.single(); err != nil {
		return err
	}

	e.page.record(Action{Kind: "scroll", Target: e.target})

	return nil
}

// Launcher hands out sessions over pages built by a factory.
type Launcher struct {
	mu       sync.Mutex
	factory  func(session int) (*Page, error)
	opened   int
	closed   int
	sessions []*Session
}

// NewLauncher calls factory with the 1-based session number on every NewSession.
func NewLauncher(factory func(session int) (*Page, error)) *Launcher {
	return &Launcher{factory: factory}
}

func (l *Launcher) NewSession(ctx context.Context) (browser.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.opened++

	page, err := l.factory(l.opened)
	if err != nil {
		return nil, err
	}

	session := &Session{page: page, launcher: l}
	l.sessions = append(l.sessions, session)

	return session, nil
}

// Opened is the number of NewSession calls.
func (l *Launcher) Opened() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.opened
}

// Closed is the number of sessions closed.
func (l *Launcher) Closed() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.closed
}

// Sessions returns the sessions opened so far.
func (l *Launcher) Sessions() []*Session {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]*Session(nil), l.sessions...)
}

// Session is a fixture browser.Session.
type Session struct {
	page     *Page
	launcher *Launcher
	closed   bool
}

func (s *Session) Page() browser.Page {
	return s.page
}

// Fixture returns the underlying fixture page.
func (s *Session) Fixture() *Page {
	return s.page
}

func (s *Session) Close() error {
	s.launcher.mu.Lock()
	defer s.launcher.mu.Unlock()

	if !s.closed {
		s.closed = true
		s.launcher.closed++
	}

	return nil
}
