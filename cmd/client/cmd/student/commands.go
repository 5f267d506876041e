package student

func init() {
	StudentCmd.AddCommand(AddCmd)
	StudentCmd.AddCommand(ListCmd)
	StudentCmd.AddCommand(ShowCmd)
	StudentCmd.AddCommand(DeleteCmd)
	StudentCmd.AddCommand(ClearCmd)
	StudentCmd.AddCommand(ExportCmd)
	StudentCmd.AddCommand(ImportCmd)
}
