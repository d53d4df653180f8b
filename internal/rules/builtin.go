package rules

import "github.com/roach88/cardfx/internal/ir"

// builtinRules is the interaction rule table in evaluation order.
// Never hand this slice out; Default() snapshots it.
var builtinRules = []ir.InteractionRule{
	{
		Tags:        []string{"javascript", "react"},
		Effect:      ir.EffectMerge,
		Strength:    0.9,
		Description: "React projects fold into the JavaScript cluster",
	},
	{
		Tags:        []string{"javascript", "typescript"},
		Effect:      ir.EffectMerge,
		Strength:    0.85,
		Description: "TypeScript and JavaScript share a runtime",
	},
	{
		Tags:        []string{"react", "nextjs"},
		Effect:      ir.EffectChain,
		Strength:    0.8,
		Description: "Next.js builds on React",
	},
	{
		Tags:        []string{"node", "javascript", "express"},
		Effect:      ir.EffectChain,
		Strength:    0.7,
		Description: "Server-side JavaScript stack",
	},
	{
		Tags:        []string{"threejs", "webgl"},
		Effect:      ir.EffectScale,
		Strength:    0.75,
		Description: "3D on the web",
	},
	{
		Tags:        []string{"threejs", "react"},
		Effect:      ir.EffectAttract,
		Strength:    0.6,
		Description: "React scenes pull toward three.js work",
	},
	{
		Tags:        []string{"python", "machine-learning"},
		Effect:      ir.EffectGlow,
		Strength:    0.75,
		Description: "Python powers the ML projects",
	},
	{
		Tags:        []string{"python", "data"},
		Effect:      ir.EffectAttract,
		Strength:    0.55,
		Description: "Data tooling gathers around Python",
	},
	{
		Tags:        []string{"unity", "csharp"},
		Effect:      ir.EffectMerge,
		Strength:    0.85,
		Description: "Unity games are written in C#",
	},
	{
		Tags:        []string{"unity", "blender"},
		Effect:      ir.EffectAttract,
		Strength:    0.7,
		Description: "Blender assets feed Unity scenes",
	},
	{
		Tags:        []string{"game", "unity", "unreal"},
		Effect:      ir.EffectPulse,
		Strength:    0.65,
		Description: "Game engines beat together",
	},
	{
		Tags:        []string{"hardware", "arduino"},
		Effect:      ir.EffectPulse,
		Strength:    0.8,
		Description: "Microcontroller builds",
	},
	{
		Tags:        []string{"arduino", "cpp"},
		Effect:      ir.EffectChain,
		Strength:    0.6,
		Description: "Firmware written in C++",
	},
	{
		Tags:        []string{"hardware", "pcb", "electronics"},
		Effect:      ir.EffectGlow,
		Strength:    0.7,
		Description: "Circuit design lights up hardware work",
	},
	{
		Tags:        []string{"audio", "dsp"},
		Effect:      ir.EffectColorShift,
		Strength:    0.7,
		Description: "Signal processing tints audio projects",
	},
	{
		Tags:        []string{"audio", "music"},
		Effect:      ir.EffectGlow,
		Strength:    0.65,
		Description: "Music projects resonate",
	},
	{
		Tags:        []string{"design", "figma"},
		Effect:      ir.EffectColorShift,
		Strength:    0.5,
		Description: "Design work shares a palette",
	},
	{
		Tags:        []string{"rust", "go"},
		Effect:      ir.EffectRepel,
		Strength:    0.4,
		Description: "Systems languages keep their distance",
	},
}

// builtinModifiers is the layout modifier table keyed by private attribute.
var builtinModifiers = map[string]ir.ModifierEntry{
	"featured": ir.Direct{Descriptor: ir.ModifierDescriptor{
		Effect:      "highlight",
		Params:      map[string]float64{"scale": 1.2, "glow": 0.8},
		Description: "Featured projects are enlarged and lit",
	}},
	"collaborators": ir.Direct{Descriptor: ir.ModifierDescriptor{
		Effect:      "cluster",
		Params:      map[string]float64{"radius": 1.5},
		Description: "Team projects gather satellite nodes",
	}},
	"difficulty": ir.Direct{Descriptor: ir.ModifierDescriptor{
		Effect:      "elevate",
		Params:      map[string]float64{"height": 0.5},
		Description: "Harder projects float higher",
	}},
	"status": ir.ByValue{
		"completed": {
			Effect:      "stabilize",
			Params:      map[string]float64{"damping": 0.9},
			Description: "Finished projects sit still",
		},
		"in-progress": {
			Effect:      "pulse",
			Params:      map[string]float64{"frequency": 1.5},
			Description: "Active projects pulse",
		},
		"archived": {
			Effect:      "fade",
			Params:      map[string]float64{"opacity": 0.5},
			Description: "Archived projects recede",
		},
		"prototype": {
			Effect:      "flicker",
			Params:      map[string]float64{"rate": 0.3},
			Description: "Prototypes flicker",
		},
	},
	"priority": ir.ByValue{
		"high": {
			Effect:      "enlarge",
			Params:      map[string]float64{"scale": 1.3},
			Description: "High priority cards take more room",
		},
		"low": {
			Effect:      "shrink",
			Params:      map[string]float64{"scale": 0.8},
			Description: "Low priority cards step back",
		},
	},
}
