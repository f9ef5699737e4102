package drive

import "time"

var demoModified = time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)

// demoFiles is the fixed dataset served whenever live access is unavailable.
var demoFiles = []File{
	{
		ID:           "demo-syllabus",
		Name:         "Algebra I Syllabus.pdf",
		MimeType:     "application/pdf",
		Size:         248_331,
		ModifiedTime: demoModified,
		WebViewLink:  "https://drive.google.com/file/d/demo-syllabus/view",
		Parents:      []string{"root"},
	},
	{
		ID:           "demo-gradebook",
		Name:         "Gradebook 2024.xlsx",
		MimeType:     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Size:         91_204,
		ModifiedTime: demoModified.Add(-24 * time.Hour),
		WebViewLink:  "https://drive.google.com/file/d/demo-gradebook/view",
		Parents:      []string{"root"},
	},
	{
		ID:           "demo-lesson-plans",
		Name:         "Lesson Plans",
		MimeType:     folderMimeType,
		ModifiedTime: demoModified.Add(-48 * time.Hour),
		WebViewLink:  "https://drive.google.com/drive/folders/demo-lesson-plans",
		Parents:      []string{"root"},
	},
	{
		ID:           "demo-week1",
		Name:         "Week 1 - Linear Equations.docx",
		MimeType:     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Size:         33_870,
		ModifiedTime: demoModified.Add(-72 * time.Hour),
		WebViewLink:  "https://drive.google.com/file/d/demo-week1/view",
		Parents:      []string{"demo-lesson-plans"},
	},
	{
		ID:           "demo-field-trip",
		Name:         "Field Trip Permission Slip.pdf",
		MimeType:     "application/pdf",
		Size:         120_512,
		ModifiedTime: demoModified.Add(-96 * time.Hour),
		WebViewLink:  "https://drive.google.com/file/d/demo-field-trip/view",
		Parents:      []string{"root"},
	},
}

func demoInFolder(folderID string) []File {
	if folderID == "" {
		folderID = "root"
	}
	var out []File
	for _, f := range demoFiles {
		for _, p := range f.Parents {
			if p == folderID {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

func demoMatching(query string) []File {
	var out []File
	for _, f := range demoFiles {
		if containsFold(f.Name, query) {
			out = append(out, f)
		}
	}
	return out
}

func demoLink(fileID string) string {
	for _, f := range demoFiles {
		if f.ID == fileID {
			return f.WebViewLink
		}
	}
	return "https://drive.google.com/file/d/" + fileID + "/view?usp=sharing"
}
