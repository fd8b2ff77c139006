package material

// Structural Steel Properties

const (
	// YieldStrength is the tensile yield strength of structural steel (Pa)
	YieldStrength = 350e6

	// Grade is the assumed material designation
	Grade = "Structural steel (Fy = 350 MPa)"
)
