// Package field models one season's playing field: dimensions, named
// element reference poses and the fiducial (AprilTag) set. A layout is
// built once from a declarative spec, validated, and then served as an
// immutable query object. Specs are authored in inches and degrees with a
// blue-alliance origin; the built layout works in meters and radians.
package field

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LayoutSpec is the declarative description of one field. It is the only
// input to Build; nothing else configures a layout.
type LayoutSpec struct {
	Name           string         `json:"name"`
	Season         int            `json:"season"`
	FieldLengthIn  float64        `json:"field_length_in"`
	FieldWidthIn   float64        `json:"field_width_in"`
	TapeWidthIn    float64        `json:"tape_width_in"`
	FiducialSizeIn float64        `json:"fiducial_size_in"`
	FiducialCount  int            `json:"fiducial_count"`
	GamePiece      *GamePieceSpec `json:"game_piece,omitempty"`
	Elements       []ElementSpec  `json:"elements"`
	Fiducials      []FiducialSpec `json:"fiducials"`
}

// GamePieceSpec describes the season's game piece.
type GamePieceSpec struct {
	Name       string  `json:"name"`
	DiameterIn float64 `json:"diameter_in"`
	WeightLbs  float64 `json:"weight_lbs"`
}

// ElementSpec describes one named field structure. Poses are the canonical
// blue-side reference poses; RedPoses is an optional cross-check against
// the mirror transform and is never stored. Dimensions are labeled scalar
// lengths in inches; Angles are labeled scalars in degrees.
type ElementSpec struct {
	Name             string             `json:"name"`
	Dimensions       map[string]float64 `json:"dimensions_in,omitempty"`
	Angles           map[string]float64 `json:"angles_deg,omitempty"`
	Poses            []PoseSpec         `json:"poses,omitempty"`
	RedPoses         []PoseSpec         `json:"red_poses,omitempty"`
	FiducialHeightIn float64            `json:"fiducial_height_in,omitempty"`
	Fiducials        []int              `json:"fiducials,omitempty"`
}

// PoseSpec is one labeled planar reference pose, authored in inches and
// degrees.
type PoseSpec struct {
	Label      string  `json:"label"`
	XIn        float64 `json:"x_in"`
	YIn        float64 `json:"y_in"`
	HeadingDeg float64 `json:"heading_deg"`
}

// FiducialSpec is one fiducial marker: mounting position, facing, and the
// element it is mounted on.
type FiducialSpec struct {
	ID      int     `json:"id"`
	XIn     float64 `json:"x_in"`
	YIn     float64 `json:"y_in"`
	ZIn     float64 `json:"z_in"`
	YawDeg  float64 `json:"yaw_deg"`
	Element string  `json:"element,omitempty"`
}

// ParseSpec decodes a JSON layout spec. It does not validate; Build does.
func ParseSpec(data []byte) (*LayoutSpec, error) {
	var spec LayoutSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse layout spec JSON: %w", err)
	}
	return &spec, nil
}

// maxSpecFileSize bounds external spec files (1MB).
const maxSpecFileSize = 1 * 1024 * 1024

// LoadSpecFile reads and decodes a layout spec from a JSON file. The path
// must have a .json extension and be under the max file size.
func LoadSpecFile(path string) (*LayoutSpec, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("layout spec file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat layout spec file: %w", err)
	}
	if fileInfo.Size() > maxSpecFileSize {
		return nil, fmt.Errorf("layout spec file too large: %d bytes (max %d)", fileInfo.Size(), maxSpecFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout spec file: %w", err)
	}
	return ParseSpec(data)
}
