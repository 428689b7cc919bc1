package shared

// DocumentProps configures the host document shell. The page body is
// rendered inside the element whose id is MountID.
type DocumentProps struct {
	Title       string
	MountID     string
	Stylesheets []string
}
