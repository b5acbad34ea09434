package script

import (
	"regexp"
	"strconv"
)

// DefaultCloseEffort is the gripper effort ceiling used when closeGripper()
// is called without an argument.
const DefaultCloseEffort = 0.8

// num matches an optionally negative integer or decimal literal.
const num = `-?\d+(?:\.\d+)?`

var (
	lineComments  = regexp.MustCompile(`//[^\n]*`)
	blockComments = regexp.MustCompile(`(?s)/\*.*?\*/`)

	moveJointRe    = regexp.MustCompile(`robot\s*\.\s*moveJoint\s*\(\s*(-?\d+)\s*,\s*(` + num + `)\s*\)`)
	openGripperRe  = regexp.MustCompile(`robot\s*\.\s*openGripper\s*\(\s*\)`)
	closeGripperRe = regexp.MustCompile(`robot\s*\.\s*closeGripper\s*\(\s*(` + num + `)?\s*\)`)
	moveToPoseRe   = regexp.MustCompile(`robot\s*\.\s*moveToPose\s*\(\s*(` + num + `)\s*,\s*(` + num + `)\s*,\s*(` + num + `)\s*\)`)
	moveRe         = regexp.MustCompile(`robot\s*\.\s*move\s*\(\s*(` + num + `)\s*,\s*(` + num + `)\s*\)`)
	getDistanceRe  = regexp.MustCompile(`robot\s*\.\s*getDistance\s*\(\s*\)`)
	setLightRe     = regexp.MustCompile(`robot\s*\.\s*setLight\s*\(\s*(?:"([^"]*)"|'([^']*)'|([^()\s]+))\s*\)`)
)

// Parse extracts the command sequence from raw program text.
//
// The source is scanned once per command kind, in a fixed kind order, and the
// per-kind matches are concatenated. Emission order is therefore scan order,
// not strict source order: every moveJoint in the text precedes every
// openGripper, and so on. Malformed or unrecognized calls are dropped
// silently; a zero-length result is a valid outcome the caller may surface
// as "no commands found".
func Parse(source string) []Command {
	src := stripComments(source)

	var cmds []Command

	for _, m := range moveJointRe.FindAllStringSubmatch(src, -1) {
		joint, err := strconv.Atoi(m[1])
		if err != nil || joint < 0 || joint > 4 {
			continue // invalid joint index, dropped without diagnostics
		}
		angle, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		cmds = append(cmds, MoveJoint{Joint: joint, Angle: angle})
	}

	for range openGripperRe.FindAllString(src, -1) {
		cmds = append(cmds, OpenGripper{})
	}

	for _, m := range closeGripperRe.FindAllStringSubmatch(src, -1) {
		effort := DefaultCloseEffort
		if m[1] != "" {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			effort = v
		}
		cmds = append(cmds, CloseGripper{MaxEffort: effort})
	}

	for _, m := range moveToPoseRe.FindAllStringSubmatch(src, -1) {
		x, errX := strconv.ParseFloat(m[1], 64)
		y, errY := strconv.ParseFloat(m[2], 64)
		z, errZ := strconv.ParseFloat(m[3], 64)
		if errX != nil || errY != nil || errZ != nil {
			continue
		}
		cmds = append(cmds, MoveToPose{X: x, Y: y, Z: z})
	}

	for _, m := range moveRe.FindAllStringSubmatch(src, -1) {
		vx, errV := strconv.ParseFloat(m[1], 64)
		wz, errW := strconv.ParseFloat(m[2], 64)
		if errV != nil || errW != nil {
			continue
		}
		cmds = append(cmds, SetVelocity{Linear: vx, Angular: wz})
	}

	for range getDistanceRe.FindAllString(src, -1) {
		cmds = append(cmds, ReadDistance{})
	}

	for _, m := range setLightRe.FindAllStringSubmatch(src, -1) {
		cmds = append(cmds, SetLight{Color: lightColor(m)})
	}

	return cmds
}

// stripComments removes // line comments and /* */ block comments.
func stripComments(src string) string {
	src = blockComments.ReplaceAllString(src, "")
	return lineComments.ReplaceAllString(src, "")
}

// lightColor resolves a setLight argument from its submatches. Quoted
// arguments pass through as-is. A bare token that parses as a number is
// truncated to an integer and formatted as a zero-padded 6-digit hex color;
// any other bare token (a named color) passes through.
func lightColor(m []string) string {
	switch {
	case m[1] != "":
		return m[1]
	case m[2] != "":
		return m[2]
	}
	tok := m[3]
	if v, err := strconv.ParseFloat(tok, 64); err == nil {
		return padHex(int64(v))
	}
	return tok
}

// padHex formats a numeric color as a 6-hex-digit string.
func padHex(v int64) string {
	s := strconv.FormatInt(v&0xffffff, 16)
	for len(s) < 6 {
		s = "0" + s
	}
	return s
}
