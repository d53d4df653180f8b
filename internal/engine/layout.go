package engine

import (
	"github.com/roach88/cardfx/internal/ir"
)

// CalculateLayoutModifiers resolves private attributes to layout modifiers.
//
// Attributes are visited in declaration order:
//   - Key without a table entry: skipped
//   - Direct entry: its descriptor is emitted
//   - ByValue entry: the descriptor for the attribute's value is emitted,
//     or nothing if the value has no descriptor
//
// Every emitted modifier is annotated with the attribute key and value.
func (e *Engine) CalculateLayoutModifiers(attrs ir.Attributes) []ir.ResolvedModifier {
	out := make([]ir.ResolvedModifier, 0, len(attrs))
	for _, attr := range attrs {
		entry, ok := e.table.Modifier(attr.Key)
		if !ok {
			continue
		}

		var desc ir.ModifierDescriptor
		switch en := entry.(type) {
		case ir.Direct:
			desc = en.Descriptor
		case ir.ByValue:
			d, found := en.Resolve(attr.Value)
			if !found {
				e.log().Debug("no modifier for attribute value",
					"tag", attr.Key,
					"value", attr.Value,
				)
				continue
			}
			desc = d
		default:
			continue
		}

		out = append(out, ir.ResolvedModifier{
			Tag:                attr.Key,
			Value:              attr.Value,
			ModifierDescriptor: desc,
		})
	}
	return out
}
