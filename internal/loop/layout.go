package loop

// layout fits a playfield of the given logical aspect ratio into the
// terminal. Cells are drawn as two square-ish sub-pixels, so a render area of
// w columns and h rows shows w by 2h pixels. The area is centered below the
// HUD rows.
func layout(termWidth, termHeight int, fieldWidth, fieldHeight float64) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	availW := min(termWidth-2, MaxTermWidth) // Keep a column for each border
	availH := min(termHeight-hudRows-2, MaxTermHeight)
	availW = max(availW, 1)
	availH = max(availH, 1)

	aspect := fieldWidth / fieldHeight
	renderWidth = availW
	renderHeight = int(float64(renderWidth) / aspect / 2)
	if renderHeight > availH {
		renderHeight = availH
		renderWidth = int(float64(renderHeight) * 2 * aspect)
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = hudRows + max((termHeight-hudRows-renderHeight)/2, 0)
	return renderWidth, renderHeight, offsetCol, offsetRow
}
