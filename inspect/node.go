package inspect

// Node is one component in the inspection tree: a document, one of its
// entries, a menu option.
type Node struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`

	// Bounds are in columns and lines relative to the parent.
	Bounds Bounds `json:"bounds"`

	State    map[string]interface{} `json:"state,omitempty"`
	Children []*Node                `json:"children,omitempty"`

	// Content is the rendered text, without the trailing line break.
	Content string `json:"content,omitempty"`
}

// Bounds is a component position and size.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewNode creates a node of the given type.
func NewNode(nodeType string) *Node {
	return &Node{
		Type:  nodeType,
		State: make(map[string]interface{}),
	}
}

// WithID sets the node ID.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// WithBounds sets the node bounds.
func (n *Node) WithBounds(x, y, width, height int) *Node {
	n.Bounds = Bounds{X: x, Y: y, Width: width, Height: height}
	return n
}

// WithState records one state value.
func (n *Node) WithState(key string, value interface{}) *Node {
	if n.State == nil {
		n.State = make(map[string]interface{})
	}
	n.State[key] = value
	return n
}

// AddChild appends child and returns the parent.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// WithContent sets the rendered text.
func (n *Node) WithContent(content string) *Node {
	n.Content = content
	return n
}

// Find returns the first node of type nodeType in a depth-first walk, or
// nil.
func (n *Node) Find(nodeType string) *Node {
	if n.Type == nodeType {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(nodeType); found != nil {
			return found
		}
	}
	return nil
}

// Count returns how many nodes of type nodeType are in the tree.
func (n *Node) Count(nodeType string) int {
	count := 0
	if n.Type == nodeType {
		count++
	}
	for _, c := range n.Children {
		count += c.Count(nodeType)
	}
	return count
}
