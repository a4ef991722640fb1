package visual

import (
	"fmt"
	"strings"
)

const baseVisualStyle = `Style: REALISTIC BODYCAM FOOTAGE (Unreal Engine 5).
Perspective: STRICT FIRST PERSON (POV).
Lens: Wide Angle GoPro.
Lighting: Volumetric Red Fog, High Contrast, Sweaty.`

const negativePrompt = `nsfw, nude, third person, back view, selfie, multiple people, two people, portrait,
character face, mirror reflection, text, hud, ui, watermark, low quality,
cartoon, anime, drawing, sketch, split screen, collage, floating objects,
glitch, distorted hands, bad anatomy, extra fingers, missing limbs,
bright blue sky, happy atmosphere, green grass, camera on tripod,
cinematic shot of actor, looking at character.`

const cameraConstraint = "FORCE CAMERA TO EYE LEVEL. DO NOT SHOW CHARACTER BODY."

// Correction carries what went wrong with the previous attempt into the next one.
type Correction struct {
	ErrorType   ErrorType
	Instruction string
}

// crashCorrection is used after an attempt returned no image.
var crashCorrection = Correction{ErrorType: ErrorGeneration, Instruction: "Retry after crash"}

// EngineerPrompt builds the full image prompt for a scene. A nil correction
// produces a first attempt.
func EngineerPrompt(scene string, correction *Correction) string {
	var b strings.Builder
	if correction != nil {
		b.WriteString("!!! CORRECTION MODE !!!\n")
		fmt.Fprintf(&b, "PREVIOUS ERROR: %s\n", correction.ErrorType)
		fmt.Fprintf(&b, "MANDATORY FIX: %s\n", correction.Instruction)
		fmt.Fprintf(&b, "CAMERA: %s\n\n", cameraConstraint)
	}
	b.WriteString(baseVisualStyle)
	fmt.Fprintf(&b, "\nSCENE: %s\n", scene)
	b.WriteString(negativePrompt)
	return b.String()
}
