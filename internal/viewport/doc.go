// Package viewport maintains the timeline zoom scale and horizontal scroll
// offset, and implements the focal-point-stationary zoom math shared by
// wheel, pinch, and trackpad gesture input.
package viewport
