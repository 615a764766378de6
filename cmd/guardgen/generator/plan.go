package generator

import (
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/tlipoca9/guardgen/genkit"
	"github.com/tlipoca9/guardgen/ir"
)

// plan is the outcome of the naming pass: the declarations a service
// produces in emission order, and the identifiers they carry.
type plan struct {
	svc    *ir.Service
	cfg    *genkit.Config
	names  Names
	types  []*ir.Type
	enums  []*ir.Enum
	unions []*ir.Union
	params []*paramsSet
	dates  sets.Set[string]
}

// paramsSet is the parameter list of one method.
type paramsSet struct {
	iface   *ir.Interface
	method  *ir.Method
	members []*ir.Member
}

func newPlan(svc *ir.Service, cfg *genkit.Config) *plan {
	p := &plan{
		svc:    svc,
		cfg:    cfg,
		names:  NewNames(cfg.Files),
		types:  append([]*ir.Type(nil), svc.Types...),
		enums:  append([]*ir.Enum(nil), svc.Enums...),
		unions: append([]*ir.Union(nil), svc.Unions...),
		dates:  NeedsDateConversion(svc),
	}
	sort.SliceStable(p.types, func(i, j int) bool { return p.types[i].Name < p.types[j].Name })
	sort.SliceStable(p.enums, func(i, j int) bool { return p.enums[i].Name < p.enums[j].Name })
	sort.SliceStable(p.unions, func(i, j int) bool { return p.unions[i].Name < p.unions[j].Name })
	for _, iface := range svc.Interfaces {
		for _, m := range iface.Methods {
			if len(m.Parameters) == 0 {
				continue
			}
			p.params = append(p.params, &paramsSet{
				iface:   iface,
				method:  m,
				members: ir.SortedMembers(m.Parameters),
			})
		}
	}
	return p
}

// paramsFor returns the parameter set of a method, or nil if it takes none.
func (p *plan) paramsFor(iface *ir.Interface, m *ir.Method) *paramsSet {
	for _, ps := range p.params {
		if ps.iface == iface && ps.method == m {
			return ps
		}
	}
	return nil
}

// NeedsDateConversion returns the names of the types whose property graph,
// following type references, reaches a date or date-time property.
func NeedsDateConversion(svc *ir.Service) sets.Set[string] {
	out := sets.New[string]()
	for _, t := range svc.Types {
		if reachesDate(svc, t, sets.New[string]()) {
			out.Insert(t.Name)
		}
	}
	return out
}

func reachesDate(svc *ir.Service, t *ir.Type, visited sets.Set[string]) bool {
	if visited.Has(t.Name) {
		return false
	}
	visited.Insert(t.Name)
	for _, p := range t.Properties {
		if p.Primitive().IsDate() {
			return true
		}
		if nested := svc.Type(p.Type); nested != nil && reachesDate(svc, nested, visited) {
			return true
		}
	}
	return false
}
