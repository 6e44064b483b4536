// Package cli is the interactive roomboard shell: it signs a roommate in,
// activates their household in the group data store and offers commands to
// browse and edit it.
package cli
