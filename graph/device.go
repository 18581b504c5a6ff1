package graph

import (
	"sync/atomic"

	"github.com/arloliu/haplo/endian"
)

// DeviceContainer stores nodes as a struct of arrays, the layout expected by device kernels.
type DeviceContainer struct {
	positions []uint64
	weights   []atomic.Uint64
	worstCase []atomic.Uint64
	links     []Link
}

var _ Container = (*DeviceContainer)(nil)

// NewDeviceContainer creates a container with n nodes.
func NewDeviceContainer(n int) *DeviceContainer {
	c := &DeviceContainer{}
	c.Resize(n)

	return c
}

// ToDevice copies cpu into a new device container. Later changes to either side are not
// reflected in the other.
func ToDevice(cpu *CPUContainer) *DeviceContainer {
	n := cpu.NumNodes()
	d := NewDeviceContainer(n)
	for i := range cpu.nodes {
		d.positions[i] = uint64(cpu.nodes[i].position)
		d.weights[i].Store(cpu.nodes[i].Weight())
		d.worstCase[i].Store(cpu.nodes[i].WorstCaseValue())
	}
	for i := range cpu.links {
		d.links[i].same.Store(cpu.links[i].Same())
		d.links[i].opposite.Store(cpu.links[i].Opposite())
	}

	return d
}

func (c *DeviceContainer) Resize(n int) {
	n = max(n, 0)
	c.positions = make([]uint64, n)
	c.weights = make([]atomic.Uint64, n)
	c.worstCase = make([]atomic.Uint64, n)
	c.links = make([]Link, NumLinks(n))
	for i := range c.positions {
		c.positions[i] = uint64(i)
	}
}

func (c *DeviceContainer) NumNodes() int { return len(c.positions) }
func (c *DeviceContainer) NumLinks() int { return len(c.links) }

func (c *DeviceContainer) Position(i int) (int, error) {
	if err := checkNode(i, len(c.positions)); err != nil {
		return 0, err
	}

	return int(c.positions[i]), nil
}

func (c *DeviceContainer) AddWeight(i int, d uint64) error {
	if err := checkNode(i, len(c.positions)); err != nil {
		return err
	}
	c.weights[i].Add(d)

	return nil
}

func (c *DeviceContainer) Weight(i int) (uint64, error) {
	if err := checkNode(i, len(c.positions)); err != nil {
		return 0, err
	}

	return c.weights[i].Load(), nil
}

func (c *DeviceContainer) AddWorstCaseValue(i int, d uint64) error {
	if err := checkNode(i, len(c.positions)); err != nil {
		return err
	}
	c.worstCase[i].Add(d)

	return nil
}

func (c *DeviceContainer) RaiseWorstCaseValue(i int, v uint64) error {
	if err := checkNode(i, len(c.positions)); err != nil {
		return err
	}
	raiseMax(&c.worstCase[i], v)

	return nil
}

func (c *DeviceContainer) WorstCaseValue(i int) (uint64, error) {
	if err := checkNode(i, len(c.positions)); err != nil {
		return 0, err
	}

	return c.worstCase[i].Load(), nil
}

func (c *DeviceContainer) Link(a, b int) (*Link, error) {
	if err := checkLink(a, b, len(c.positions)); err != nil {
		return nil, err
	}

	return &c.links[LinkIndex(len(c.positions), a, b)], nil
}

// Transfer returns the flat upload image of the container:
//
//	node count            uint64
//	positions[n]          uint64
//	weights[n]            uint64
//	worst-case values[n]  uint64
//	links[n(n-1)/2]       same uint64, opposite uint64
//
// Accumulators are read without synchronization against writers; call Transfer after
// they have joined.
func (c *DeviceContainer) Transfer(engine endian.Engine) []byte {
	n := len(c.positions)
	buf := make([]byte, 0, 8*(1+3*n+2*len(c.links)))

	buf = engine.AppendUint64(buf, uint64(n))
	for _, p := range c.positions {
		buf = engine.AppendUint64(buf, p)
	}
	for i := range c.weights {
		buf = engine.AppendUint64(buf, c.weights[i].Load())
	}
	for i := range c.worstCase {
		buf = engine.AppendUint64(buf, c.worstCase[i].Load())
	}
	for i := range c.links {
		buf = engine.AppendUint64(buf, c.links[i].Same())
		buf = engine.AppendUint64(buf, c.links[i].Opposite())
	}

	return buf
}
