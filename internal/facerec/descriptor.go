// Package facerec handles the face descriptors captured by the registration
// page. A descriptor is a fixed-length brightness fingerprint sampled from a
// single camera frame, stored as JSON text. It is deterministic for a given
// frame but is not a facial embedding, and it is not consulted during login.
package facerec

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math"
)

// DescriptorSize is the number of samples in a descriptor.
const DescriptorSize = 256

// MatchThreshold is the default Euclidean distance below which two
// descriptors are considered the same capture.
const MatchThreshold = 0.5

var (
	ErrInvalidDescriptor = errors.New("invalid face descriptor")
	ErrEmptyFrame        = errors.New("frame has no pixels")
)

// Descriptor is a fixed-length vector of normalized brightness samples,
// each in [0, 1].
type Descriptor []float32

// Parse decodes a descriptor from its JSON array text form and validates
// its length and value range.
func Parse(s string) (Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	if len(d) != DescriptorSize {
		return nil, fmt.Errorf("%w: expected %d samples, got %d", ErrInvalidDescriptor, DescriptorSize, len(d))
	}
	for _, v := range d {
		if v < 0 || v > 1 || math.IsNaN(float64(v)) {
			return nil, fmt.Errorf("%w: sample out of range", ErrInvalidDescriptor)
		}
	}
	return d, nil
}

// String encodes the descriptor as a JSON array for storage.
func (d Descriptor) String() string {
	b, _ := json.Marshal([]float32(d))
	return string(b)
}

// Sample derives a descriptor from a decoded frame by reading a fixed number
// of evenly spaced pixels and averaging each pixel's color channels into one
// normalized scalar.
func Sample(img image.Image) (Descriptor, error) {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return nil, ErrEmptyFrame
	}

	d := make(Descriptor, DescriptorSize)
	step := float64(total) / DescriptorSize
	for i := 0; i < DescriptorSize; i++ {
		idx := int(float64(i) * step)
		if idx >= total {
			idx = total - 1
		}
		x := bounds.Min.X + idx%bounds.Dx()
		y := bounds.Min.Y + idx/bounds.Dx()
		r, g, b, _ := img.At(x, y).RGBA()
		// RGBA returns 16-bit channels; scale down to 8-bit before averaging
		avg := float64(r>>8+g>>8+b>>8) / 3 / 255
		d[i] = float32(avg)
	}
	return d, nil
}

// Distance returns the Euclidean distance between two descriptors. When the
// lengths differ only the common prefix is compared.
func Distance(a, b Descriptor) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		diff := float64(a[i] - b[i])
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// IsMatch reports whether a distance is below the match threshold. Lower
// distance means a closer match.
func IsMatch(distance, threshold float64) bool {
	return distance < threshold
}
