package domain

// DefaultUniverse lists the instruments quoted on the Caracas exchange
// that the dashboard tracks. Symbols carry Yahoo's .CR exchange suffix.
var DefaultUniverse = []string{
	"ABC-A.CR", "BEX.CR", "BNC.CR", "BPV.CR", "BVE.CR", "BVCC.CR", "BVL.CR",
	"CCP-B.CR", "CCR.CR", "CGQ.CR", "CIE.CR", "CRM-A.CR", "DOM.CR",
	"EFE.CR", "ENV.CR", "FNC.CR", "FNV.CR", "FVIA.CR", "FVIB.CR",
	"GMC-B.CR", "GZL.CR", "ICP-B.CR", "INV.CR", "IVC-A.CR", "IVC-B.CR",
	"MPA.CR", "MVZ-A.CR", "MVZ-B.CR", "PCP-B.CR", "PER.CR", "PGR.CR", "PIV-B.CR",
	"PTN.CR", "RFM.CR", "RST.CR", "RST-B.CR", "SVS.CR", "TDV-D.CR",
	"TPG.CR", "VNA-B.CR",
}
