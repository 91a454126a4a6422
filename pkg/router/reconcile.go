package router

import (
	rterrors "github.com/vango-dev/vroute/internal/errors"
)

// Reconciler tracks live components in registration order and the pending
// tail of the last applied chain.
//
// Components are assumed to register in path-depth order: the first
// registered component renders the root segment, the next one the segment
// below it, and so on.
type Reconciler struct {
	ids     []string
	live    map[string]Component
	pending ComponentChain
}

// NewReconciler returns an empty reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{live: make(map[string]Component)}
}

// assignment is a slot value to hand to a component.
type assignment struct {
	component Component
	name      string
}

// plan is the ordered list of slot assignments produced by Apply and
// Register. It is computed under the router lock and executed outside it,
// so components may call back into the router from SetSlot.
type plan []assignment

func (p plan) run() {
	for _, a := range p {
		a.component.SetSlot(a.name)
	}
}

// Apply makes chain the pending queue, then walks live components in
// registration order, giving each the next queued name. The walk stops at
// the first component whose name changes: every shallower component has
// already been updated, and deeper ones re-render through the host when
// their parent switches views. This early exit relies on registration order
// matching depth order.
//
// Components beyond the end of the queue receive "". Names left in the
// queue are handed to components that register later.
func (v *Reconciler) Apply(chain ComponentChain) {
	v.apply(chain).run()
}

func (v *Reconciler) apply(chain ComponentChain) plan {
	v.pending = chain.Clone()

	var p plan
	for _, id := range v.ids {
		c := v.live[id]
		old := c.Slot()
		name := v.dequeue()
		p = append(p, assignment{component: c, name: name})
		if name != old {
			break
		}
	}
	return p
}

// Register adds c to the live set. If names are pending, c immediately
// receives the front one. Registering an id that is already live replaces
// the reference but keeps its original position.
func (v *Reconciler) Register(c Component) {
	v.register(c).run()
}

func (v *Reconciler) register(c Component) plan {
	var p plan
	if len(v.pending) > 0 {
		p = plan{{component: c, name: v.dequeue()}}
	}

	id := c.ID()
	if _, exists := v.live[id]; !exists {
		v.ids = append(v.ids, id)
	}
	v.live[id] = c
	return p
}

// Remove drops c from the live set. Removing an id that is not live is a
// state error; it usually means a component was unmounted twice.
func (v *Reconciler) Remove(c Component) error {
	id := c.ID()
	if _, ok := v.live[id]; !ok {
		return rterrors.New("R030").WithPath(id)
	}
	delete(v.live, id)
	for i, other := range v.ids {
		if other == id {
			v.ids = append(v.ids[:i], v.ids[i+1:]...)
			break
		}
	}
	return nil
}

// dequeue pops the front of the pending queue, or "" when it is empty.
func (v *Reconciler) dequeue() string {
	if len(v.pending) == 0 {
		return ""
	}
	name := v.pending[0]
	v.pending = v.pending[1:]
	return name
}

// Pending returns a copy of the undrained queue.
func (v *Reconciler) Pending() ComponentChain {
	return v.pending.Clone()
}

// IDs returns live component ids in registration order.
func (v *Reconciler) IDs() []string {
	return append([]string(nil), v.ids...)
}

// Len returns the number of live components.
func (v *Reconciler) Len() int {
	return len(v.ids)
}
