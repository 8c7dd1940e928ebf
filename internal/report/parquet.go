package report

import (
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"erg-tsb/internal/analysis"
)

type dailyRow struct {
	Date string  `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	TSS  float64 `parquet:"name=tss, type=DOUBLE"`
	FTP  int32   `parquet:"name=ftp, type=INT32"`
	ATL  float64 `parquet:"name=atl, type=DOUBLE"`
	CTL  float64 `parquet:"name=ctl, type=DOUBLE"`
	TSB  float64 `parquet:"name=tsb, type=DOUBLE"`
}

// MarshalDaily encodes the daily table as SNAPPY-compressed Parquet
func MarshalDaily(days []analysis.DailyEntry) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(dailyRow), 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, d := range days {
		row := dailyRow{
			Date: d.Date.Format(analysis.DateKey),
			TSS:  d.TSS,
			FTP:  int32(d.FTP),
			ATL:  d.ATL,
			CTL:  d.CTL,
			TSB:  d.TSB,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}
