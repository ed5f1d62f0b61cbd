package fast2d

import "fmt"

// ValidateMatForOperation checks the invariants every fast2d stage
// depends on before touching the underlying gocv.Mat.
func ValidateMatForOperation(mat *Mat, operation string) error {
	if mat == nil {
		return fmt.Errorf("fast2d: Mat is nil for operation: %s", operation)
	}
	if !mat.IsValid() {
		return fmt.Errorf("fast2d: Mat is invalid for operation: %s", operation)
	}
	if mat.Empty() {
		return fmt.Errorf("fast2d: Mat is empty for operation: %s", operation)
	}
	if mat.Rows() <= 0 || mat.Cols() <= 0 {
		return fmt.Errorf("fast2d: Mat has invalid dimensions %dx%d for operation: %s",
			mat.Cols(), mat.Rows(), operation)
	}
	return nil
}
