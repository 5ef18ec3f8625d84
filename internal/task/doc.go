// Package task reads, writes, filters, and validates task files.
//
// A task is a plain text file in the task directory. Files created by this
// package look like:
//
//	Title: Buy milk
//	Description: Two litres, semi-skimmed
//	Due Date: 2024-01-01
//
// Anything else in the file is free text. The literal markers "[Complete]"
// and "[Incomplete]" anywhere in the body act as a completion flag.
//
// # Eligible Files
//
// Only entries whose extension is exactly ".txt" are scanned. The file stem
// is the task title reported by Filter and the file name is the handle used
// by View and Delete.
//
// # Filter Rules
//
// Filter classifies each file against today's date under a Mode. Two truth
// tables are available:
//
//	literal (default)
//	  due:      [Complete] || due <= today
//	  upcoming: [Incomplete] || due > today
//
//	strict
//	  due:      !complete && due <= today
//	  upcoming: !complete && due > today
//
// Files with no "Due Date:" line or an unparsable date are skipped. The skip
// is logged at debug level and never reported as an error.
package task
