package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Column 描述导出的一列：Value 优先，否则用 Key 按 json 标签或字段名取值
type Column[T any] struct {
	Title string
	Key   string
	Value func(row T) string
}

// CSV 把数据导出为带 BOM 前缀的 UTF-8 CSV 内容，第一行为表头。
// 包含逗号或引号的单元格会被引号包裹
func CSV[T any](rows []T, columns []Column[T]) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteString("\ufeff")

	w := csv.NewWriter(buf)

	headers := make([]string, 0, len(columns))
	for _, col := range columns {
		headers = append(headers, col.Title)
	}
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, row := range rows {
		record := make([]string, 0, len(columns))
		for _, col := range columns {
			record = append(record, cell(row, col))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename 生成带当前日期后缀的导出文件名
func Filename(base string, t time.Time) string {
	return fmt.Sprintf("%s_%s.csv", base, t.Format("2006-01-02"))
}

func cell[T any](row T, col Column[T]) string {
	if col.Value != nil {
		return col.Value(row)
	}

	value := fieldByKey(reflect.ValueOf(row), col.Key)
	if !value.IsValid() {
		return "-"
	}
	if value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return "-"
		}
		value = value.Elem()
	}
	return fmt.Sprintf("%v", value.Interface())
}

// fieldByKey 在结构体中按 json 标签查找字段，找不到时再按字段名（忽略大小写），
// 也支持以 map 形式给出的行
func fieldByKey(v reflect.Value, key string) reflect.Value {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		mv := v.MapIndex(reflect.ValueOf(key))
		if !mv.IsValid() {
			return reflect.Value{}
		}
		if mv.Kind() == reflect.Interface {
			mv = mv.Elem()
		}
		return mv
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if tag == key {
				return v.Field(i)
			}
		}
		for i := 0; i < t.NumField(); i++ {
			if strings.EqualFold(t.Field(i).Name, key) {
				return v.Field(i)
			}
		}
	}
	return reflect.Value{}
}
