package student

import "strings"

// Known course codes offered by the client. Other codes are accepted as free text.
const (
	CourseBSIT   = "BSIT"
	CourseBSCS   = "BSCS"
	CourseBSHM   = "BSHM"
	CourseBSCRIM = "BSCRIM"
)

var KnownCourses = []string{CourseBSIT, CourseBSCS, CourseBSHM, CourseBSCRIM}

// IsKnownCourse reports whether code is one of KnownCourses, ignoring case.
func IsKnownCourse(code string) bool {
	for _, c := range KnownCourses {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}
