package graph

// CPUContainer stores nodes as an array of structs.
type CPUContainer struct {
	nodes []Node
	links []Link
}

var _ Container = (*CPUContainer)(nil)

// NewCPUContainer creates a container with n nodes.
func NewCPUContainer(n int) *CPUContainer {
	c := &CPUContainer{}
	c.Resize(n)

	return c
}

func (c *CPUContainer) Resize(n int) {
	n = max(n, 0)
	c.nodes = make([]Node, n)
	c.links = make([]Link, NumLinks(n))
	for i := range c.nodes {
		c.nodes[i].position = i
	}
}

func (c *CPUContainer) NumNodes() int { return len(c.nodes) }
func (c *CPUContainer) NumLinks() int { return len(c.links) }

// Node returns node i.
func (c *CPUContainer) Node(i int) (*Node, error) {
	if err := checkNode(i, len(c.nodes)); err != nil {
		return nil, err
	}

	return &c.nodes[i], nil
}

func (c *CPUContainer) Position(i int) (int, error) {
	node, err := c.Node(i)
	if err != nil {
		return 0, err
	}

	return node.position, nil
}

func (c *CPUContainer) AddWeight(i int, d uint64) error {
	node, err := c.Node(i)
	if err != nil {
		return err
	}
	node.weight.Add(d)

	return nil
}

func (c *CPUContainer) Weight(i int) (uint64, error) {
	node, err := c.Node(i)
	if err != nil {
		return 0, err
	}

	return node.Weight(), nil
}

func (c *CPUContainer) AddWorstCaseValue(i int, d uint64) error {
	node, err := c.Node(i)
	if err != nil {
		return err
	}
	node.worstCase.Add(d)

	return nil
}

func (c *CPUContainer) RaiseWorstCaseValue(i int, v uint64) error {
	node, err := c.Node(i)
	if err != nil {
		return err
	}
	raiseMax(&node.worstCase, v)

	return nil
}

func (c *CPUContainer) WorstCaseValue(i int) (uint64, error) {
	node, err := c.Node(i)
	if err != nil {
		return 0, err
	}

	return node.WorstCaseValue(), nil
}

func (c *CPUContainer) Link(a, b int) (*Link, error) {
	if err := checkLink(a, b, len(c.nodes)); err != nil {
		return nil, err
	}

	return &c.links[LinkIndex(len(c.nodes), a, b)], nil
}
