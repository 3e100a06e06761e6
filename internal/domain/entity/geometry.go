package entity

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Right() float64 {
	return r.X + r.Width
}

func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Distance is the shortest distance between the edges of two rectangles,
// zero when they overlap or touch.
func (r Rect) Distance(other Rect) float64 {
	dx := math.Max(0, math.Max(other.X-r.Right(), r.X-other.Right()))
	dy := math.Max(0, math.Max(other.Y-r.Bottom(), r.Y-other.Bottom()))
	return math.Hypot(dx, dy)
}

type Position string

const (
	PositionAbove   Position = "above"
	PositionBelow   Position = "below"
	PositionLeftOf  Position = "leftOf"
	PositionRightOf Position = "rightOf"
	PositionNear    Position = "near"
)

const DefaultNearDistance = 50

var nearPattern = regexp.MustCompile(`^near(?:(\d+)(?:px|PX|Px)?)?$`)

// RelativePosition is one parsed position keyword of a relative locator.
type RelativePosition struct {
	Position Position
	Distance int
}

func (p RelativePosition) String() string {
	if p.Position == PositionNear && p.Distance != DefaultNearDistance {
		return fmt.Sprintf("near%dpx", p.Distance)
	}
	return string(p.Position)
}

// Matches reports whether candidate lies at this position relative to reference.
func (p RelativePosition) Matches(candidate, reference Rect) bool {
	switch p.Position {
	case PositionAbove:
		return candidate.Bottom() <= reference.Y
	case PositionBelow:
		return candidate.Y >= reference.Bottom()
	case PositionLeftOf:
		return candidate.Right() <= reference.X
	case PositionRightOf:
		return candidate.X >= reference.Right()
	case PositionNear:
		return candidate.Distance(reference) <= float64(p.Distance)
	default:
		return false
	}
}

func ParseRelativePosition(s string) (RelativePosition, error) {
	keyword := strings.TrimSpace(s)
	lower := strings.ToLower(keyword)
	switch lower {
	case "above":
		return RelativePosition{Position: PositionAbove}, nil
	case "below":
		return RelativePosition{Position: PositionBelow}, nil
	case "leftof", "toleftof", "left_of", "to_left_of":
		return RelativePosition{Position: PositionLeftOf}, nil
	case "rightof", "torightof", "right_of", "to_right_of":
		return RelativePosition{Position: PositionRightOf}, nil
	}
	if strings.HasPrefix(lower, "near") {
		groups := nearPattern.FindStringSubmatch(keyword)
		if groups == nil {
			return RelativePosition{}, ErrInvalidNearFormat.WithMessage(fmt.Sprintf(
				"Invalid near position format. Expected matches [%s]. Actual [%s]", nearPattern.String(), keyword))
		}
		distance := DefaultNearDistance
		if groups[1] != "" {
			d, err := strconv.Atoi(groups[1])
			if err != nil {
				return RelativePosition{}, ErrInvalidNearFormat.WithMessage(fmt.Sprintf(
					"Invalid near position format. Expected matches [%s]. Actual [%s]", nearPattern.String(), keyword)).WithCause(err)
			}
			distance = d
		}
		return RelativePosition{Position: PositionNear, Distance: distance}, nil
	}
	return RelativePosition{}, ErrUnsupportedPosition.WithMessage(fmt.Sprintf("Unsupported relative element position: %s", keyword))
}
