package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msorokin/robolab/internal/core"
	"github.com/msorokin/robolab/internal/kinematics"
	"github.com/msorokin/robolab/internal/rover"
	"github.com/msorokin/robolab/internal/script"
	"github.com/msorokin/robolab/internal/sim"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

var jointNames = [kinematics.JointCount]string{
	"base", "shoulder", "elbow", "wrist", "grip rot",
}

// drawDashboard renders the full dashboard for the active robot into the
// screen buffer.
func drawDashboard(s *core.Screen, snap sim.Snapshot, scriptName string, paused bool) {
	s.Clear()

	status := "idle"
	color := core.ColorGray
	switch {
	case paused:
		status = "PAUSED"
		color = core.ColorYellow
	case snap.Running:
		status = fmt.Sprintf("RUN %d/%d  %s", snap.CommandIndex+1, snap.CommandTotal, snap.CurrentCommand)
		color = core.ColorGreen
	}
	s.DrawText(0, 0, fmt.Sprintf("robolab · %s · %s", scriptName, snap.Robot), core.ColorCyan)
	s.DrawText(0, 1, status, color)
	s.DrawHLine(0, 2, s.Width(), '─')

	if snap.Robot == script.RobotArm {
		drawArm(s, snap)
	} else {
		drawRover(s, snap)
	}
}

// drawArm renders joint angles, the derived end-effector pose, and the
// gripper state.
func drawArm(s *core.Screen, snap sim.Snapshot) {
	y := 4
	for i, name := range jointNames {
		lo, hi := kinematics.JointRange(i)
		s.DrawText(2, y, fmt.Sprintf("%-9s %8.2f°", name, snap.Joints[i]), core.ColorWhite)
		s.DrawText(24, y, fmt.Sprintf("[%g..%g]", lo, hi), core.ColorGray)
		y++
	}

	y++
	ee := snap.EndEffector
	s.DrawText(2, y, fmt.Sprintf("end effector  x=%+.3f  y=%+.3f  z=%+.3f", ee.X, ee.Y, ee.Z), core.ColorCyan)
	y += 2

	// Gripper bar: filled portion is how far open the gripper is.
	const barWidth = 20
	filled := int(snap.GripperPosition * barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	label := "closed"
	if snap.GripperOpen {
		label = "open"
	}
	s.DrawText(2, y, fmt.Sprintf("gripper %s  %s  effort %.2f", bar, label, snap.GripperEffort), core.ColorYellow)

	if snap.Trajectory > 0 {
		y += 2
		s.DrawText(2, y, fmt.Sprintf("planned motion: %d waypoints", snap.Trajectory), core.ColorMagenta)
	}
}

// drawRover renders the occupancy grid with the rover marker plus pose and
// sensor telemetry.
func drawRover(s *core.Screen, snap sim.Snapshot) {
	r := snap.Rover

	top := 4
	rows := s.Height() - top - 1
	if rows < 1 {
		rows = 1
	}

	if snap.Grid != nil && snap.Grid.Side() > 0 {
		side := snap.Grid.Side()
		if rows > side {
			rows = side
		}
		cols := rows * 2 // terminal cells are roughly twice as tall as wide
		for gy := 0; gy < rows; gy++ {
			// Grid row 0 is the most negative Z; screen rows grow downward.
			iz := (rows - 1 - gy) * side / rows
			for gx := 0; gx < cols; gx++ {
				ix := gx * side / cols
				switch snap.Grid.AtCell(ix, iz) {
				case rover.CellOccupied:
					s.SetCell(gx, top+gy, core.Cell{Rune: '#', Color: core.ColorRed})
				case rover.CellFree:
					s.SetCell(gx, top+gy, core.Cell{Rune: '·', Color: core.ColorGray})
				}
			}
		}

		// Rover marker at its grid position.
		half := snap.Grid.Size / 2
		if r.X > -half && r.X < half && r.Z > -half && r.Z < half {
			mx := int((r.X + half) / snap.Grid.Size * float64(cols))
			mz := int((r.Z + half) / snap.Grid.Size * float64(rows))
			s.SetCell(mx, top+(rows-1-mz), core.Cell{Rune: '@', Color: core.ColorYellow})
		}

		drawRoverStatus(s, snap, rows*2+3, top)
		return
	}

	drawRoverStatus(s, snap, 2, top)
}

// drawRoverStatus renders the telemetry column next to the map.
func drawRoverStatus(s *core.Screen, snap sim.Snapshot, x, y int) {
	r := snap.Rover
	s.DrawText(x, y, fmt.Sprintf("pose     x=%+.2f z=%+.2f", r.X, r.Z), core.ColorWhite)
	s.DrawText(x, y+1, fmt.Sprintf("heading  %.1f°", core.Rad2Deg(r.Heading)), core.ColorWhite)
	s.DrawText(x, y+2, fmt.Sprintf("velocity %.2f m/s  %.2f rad/s", r.VX, r.WZ), core.ColorWhite)
	s.DrawText(x, y+4, fmt.Sprintf("distance %.2f m", snap.Distance), core.ColorCyan)

	led := snap.LED
	if led == "" {
		led = "off"
	}
	s.DrawText(x, y+5, fmt.Sprintf("LED      %s", led), core.ColorGreen)

	if snap.Grid != nil {
		free, occupied := snap.Grid.Counts()
		s.DrawText(x, y+7, fmt.Sprintf("map      %d free / %d occupied", free, occupied), core.ColorGray)
	}
}
