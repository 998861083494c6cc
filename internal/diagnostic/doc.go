// Package diagnostic provides the structured issue records collected while
// verifying SOFA objects.
//
// Issues are gathered by reference through all verification phases and
// rendered to text only at the reporting boundary:
//   - every issue carries a Kind, the field it concerns and a message
//   - issues are grouped into sections (one header per finding class)
//   - errors and warnings render to separate ERRORS and WARNINGS blocks
//   - Error converts the error list into an error matching the sentinel
//     of every recorded Kind via errors.Is
package diagnostic
