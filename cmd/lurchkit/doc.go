package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lurchmath/lurchmath-sub002/internal/document"
	"github.com/lurchmath/lurchmath-sub002/internal/logger"
	"github.com/lurchmath/lurchmath-sub002/internal/services"
)

// docCmd groups the commands that operate on Lurch document files.
var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Work with Lurch document files",
}

var docForce bool

var docNewCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Create an empty Lurch document",
	Long: `Create an empty Lurch document at the given path. A missing file
extension is filled in from the "document file extension" setting.`,
	Args: cobra.ExactArgs(1),
	Run:  runDocNew,
}

var docMetaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Read and write document metadata",
}

var docMetaListCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List metadata categories and keys",
	Args:  cobra.ExactArgs(1),
	Run:   runDocMetaList,
}

var docMetaGetCmd = &cobra.Command{
	Use:   "get <file> <category> <key>",
	Short: "Print one metadata value",
	Args:  cobra.ExactArgs(3),
	Run:   runDocMetaGet,
}

var docMetaSetCmd = &cobra.Command{
	Use:   "set <file> <category> <key> <value>",
	Short: "Store one metadata value",
	Long: `Store one metadata value. The value is parsed as JSON when possible, so
numbers and booleans keep their type; anything else is stored as a string.`,
	Args: cobra.ExactArgs(4),
	Run:  runDocMetaSet,
}

var docMetaDelCmd = &cobra.Command{
	Use:   "del <file> <category> <key>",
	Short: "Delete one metadata value",
	Args:  cobra.ExactArgs(3),
	Run:   runDocMetaDel,
}

var (
	annotateLatex string
	annotateNote  string
)

var docAnnotateCmd = &cobra.Command{
	Use:   "annotate <file>",
	Short: "Attach an expository math annotation to a document",
	Args:  cobra.ExactArgs(1),
	Run:   runDocAnnotate,
}

var docAnnotationsCmd = &cobra.Command{
	Use:   "annotations <file>",
	Short: "List the expository math annotations in a document",
	Args:  cobra.ExactArgs(1),
	Run:   runDocAnnotations,
}

var docCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check that a file is a readable Lurch document",
	Args:  cobra.ExactArgs(1),
	Run:   runDocCheck,
}

var (
	previewLatex string
	previewNote  string
)

// previewCmd renders an expository math preview without touching a document.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview expository math given in LaTeX notation",
	Run:   runPreview,
}

func init() {
	docNewCmd.Flags().BoolVar(&docForce, "force", false, "Overwrite an existing document")

	docAnnotateCmd.Flags().StringVar(&annotateLatex, "latex", "", "Annotation content in LaTeX notation (required)")
	docAnnotateCmd.Flags().StringVar(&annotateNote, "note", "", "Optional plain text note")

	previewCmd.Flags().StringVar(&previewLatex, "latex", "", "Content in LaTeX notation (required)")
	previewCmd.Flags().StringVar(&previewNote, "note", "", "Optional plain text note")

	docMetaCmd.AddCommand(docMetaListCmd)
	docMetaCmd.AddCommand(docMetaGetCmd)
	docMetaCmd.AddCommand(docMetaSetCmd)
	docMetaCmd.AddCommand(docMetaDelCmd)

	docCmd.AddCommand(docNewCmd)
	docCmd.AddCommand(docMetaCmd)
	docCmd.AddCommand(docAnnotateCmd)
	docCmd.AddCommand(docAnnotationsCmd)
	docCmd.AddCommand(docCheckCmd)

	rootCmd.AddCommand(docCmd)
	rootCmd.AddCommand(previewCmd)
}

func runDocNew(_ *cobra.Command, args []string) {
	service := settingsService()

	path := args[0]
	if filepath.Ext(path) == "" {
		path += service.Get("document file extension")
	}
	if _, err := os.Stat(path); err == nil {
		if service.GetBool("warn before overwriting a document") && !docForce {
			logger.Fatal("Refusing to overwrite existing document (pass --force)", "path", path)
		}
	}

	doc := document.New()
	if err := doc.SaveFile(path); err != nil {
		logger.Fatal("Failed to write document", "path", path, "error", err)
	}
	fmt.Printf("created %s\n", path)
}

func runDocMetaList(_ *cobra.Command, args []string) {
	doc := loadDocument(args[0])
	for _, category := range doc.MetadataCategories() {
		for _, key := range doc.MetadataKeys(category) {
			fmt.Printf("%s %s\n", category, key)
		}
	}
}

func runDocMetaGet(_ *cobra.Command, args []string) {
	doc := loadDocument(args[0])

	var value any
	found, err := doc.GetMetadata(args[1], args[2], &value)
	if err != nil {
		logger.Fatal("Failed to read metadata", "category", args[1], "key", args[2], "error", err)
	}
	if !found {
		logger.Fatal("No such metadata", "category", args[1], "key", args[2])
	}

	if text, ok := value.(string); ok {
		fmt.Println(text)
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.Fatal("Failed to format metadata value", "error", err)
	}
	fmt.Println(string(data))
}

func runDocMetaSet(_ *cobra.Command, args []string) {
	doc := loadDocument(args[0])

	// JSON values keep their type, anything else stays a string.
	var value any = args[3]
	var parsed any
	if err := json.Unmarshal([]byte(args[3]), &parsed); err == nil {
		value = parsed
	}

	if err := doc.SetMetadata(args[1], args[2], value); err != nil {
		logger.Fatal("Failed to store metadata", "category", args[1], "key", args[2], "error", err)
	}
	saveDocument(doc, args[0])
}

func runDocMetaDel(_ *cobra.Command, args []string) {
	doc := loadDocument(args[0])
	doc.DeleteMetadata(args[1], args[2])
	saveDocument(doc, args[0])
}

func runDocAnnotate(_ *cobra.Command, args []string) {
	if annotateLatex == "" {
		logger.Fatal("Missing required flag", "flag", "--latex")
	}

	doc := loadDocument(args[0])
	annotationService, err := services.GetGlobalAnnotationService()
	if err != nil {
		logger.Fatal("Annotation service unavailable", "error", err)
	}

	expository, err := annotationService.Create(annotateLatex, annotateNote)
	if err != nil {
		logger.Fatal("Invalid annotation", "error", err)
	}
	if _, err := annotationService.Attach(doc, expository); err != nil {
		logger.Fatal("Failed to attach annotation", "error", err)
	}
	saveDocument(doc, args[0])
	fmt.Printf("attached expository math %s\n", expository.ID)
}

func runDocAnnotations(_ *cobra.Command, args []string) {
	doc := loadDocument(args[0])
	annotationService, err := services.GetGlobalAnnotationService()
	if err != nil {
		logger.Fatal("Annotation service unavailable", "error", err)
	}

	annotations, err := annotationService.FindAll(doc)
	if err != nil {
		logger.Fatal("Failed to read annotations", "error", err)
	}
	if len(annotations) == 0 {
		fmt.Println("no annotations")
		return
	}
	for _, expository := range annotations {
		preview, err := annotationService.Preview(expository)
		if err != nil {
			logger.Fatal("Failed to render annotation", "id", expository.ID, "error", err)
		}
		fmt.Printf("%s  %s\n", expository.ID, preview)
	}
}

func runDocCheck(_ *cobra.Command, args []string) {
	doc := loadDocument(args[0])
	annotationService, err := services.GetGlobalAnnotationService()
	if err != nil {
		logger.Fatal("Annotation service unavailable", "error", err)
	}
	annotations, err := annotationService.FindAll(doc)
	if err != nil {
		logger.Fatal("Failed to read annotations", "error", err)
	}
	fmt.Printf("ok: format %s, %d annotations\n", doc.FormatVersion(), len(annotations))
}

func runPreview(_ *cobra.Command, _ []string) {
	if previewLatex == "" {
		logger.Fatal("Missing required flag", "flag", "--latex")
	}

	setupServices()
	annotationService, err := services.GetGlobalAnnotationService()
	if err != nil {
		logger.Fatal("Annotation service unavailable", "error", err)
	}

	expository, err := annotationService.Create(previewLatex, previewNote)
	if err != nil {
		logger.Fatal("Invalid annotation", "error", err)
	}
	rendered, err := annotationService.MarkdownPreview(expository)
	if err != nil {
		rendered, err = annotationService.Preview(expository)
		if err != nil {
			logger.Fatal("Failed to render preview", "error", err)
		}
	}
	fmt.Println(rendered)
}

func loadDocument(path string) *document.Document {
	setupServices()
	doc, err := document.LoadFile(path)
	if err != nil {
		logger.Fatal("Failed to load document", "path", path, "error", err)
	}
	return doc
}

func saveDocument(doc *document.Document, path string) {
	if err := doc.SaveFile(path); err != nil {
		logger.Fatal("Failed to write document", "path", path, "error", err)
	}
}
