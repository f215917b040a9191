package domain

// LocationKind identifies which container currently holds a draft tab.
type LocationKind string

const (
	LocationScene     LocationKind = "scene"
	LocationWorkbench LocationKind = "workbench"
	LocationIdeaBank  LocationKind = "idea_bank"
)

// Location is the tagged position of a draft tab. SceneID is set only
// when Kind is LocationScene.
type Location struct {
	Kind    LocationKind
	SceneID string
}

// InScene returns a Location pointing into the given scene.
func InScene(sceneID string) Location {
	return Location{Kind: LocationScene, SceneID: sceneID}
}

// InWorkbench returns the workbench Location.
func InWorkbench() Location {
	return Location{Kind: LocationWorkbench}
}

// InIdeaBank returns the idea-bank Location.
func InIdeaBank() Location {
	return Location{Kind: LocationIdeaBank}
}

type StarScope string

const (
	ScopeCurrentScene  StarScope = "CurrentScene"
	ScopeFuturePlot    StarScope = "FuturePlot"
	ScopeBackstory     StarScope = "Backstory"
	ScopeWorldbuilding StarScope = "Worldbuilding"
)

type StarStatus string

const (
	StarActive   StarStatus = "Active"
	StarResolved StarStatus = "Resolved"
	StarDeferred StarStatus = "Deferred"
)

// StarKind discriminates the two star variants.
type StarKind string

const (
	StarFact                StarKind = "fact"
	StarCharacterConstraint StarKind = "character_constraint"
)

// ConstraintType classifies what aspect of a character a constraint governs.
type ConstraintType string

const (
	ConstraintBehavior ConstraintType = "character_behavior"
	ConstraintDialogue ConstraintType = "character_dialogue"
	ConstraintEmotion  ConstraintType = "character_emotion"
	ConstraintSocial   ConstraintType = "character_social"
	ConstraintPhysical ConstraintType = "character_physical"
)

// ValidConstraintTypes is the canonical set of accepted constraint type strings.
var ValidConstraintTypes = map[string]bool{
	"character_behavior": true, "character_dialogue": true,
	"character_emotion": true, "character_social": true,
	"character_physical": true,
}

// DescriptionScope says whether a description targets one event or the whole tab.
type DescriptionScope string

const (
	DescScopeTab   DescriptionScope = "tab"
	DescScopeEvent DescriptionScope = "event"
)
